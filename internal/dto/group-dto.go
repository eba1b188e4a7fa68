package dto

type CreateGroupDTO struct {
	Name string `json:"name" validate:"required"`
}

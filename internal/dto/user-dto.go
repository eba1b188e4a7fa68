package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
}

type ActivateUserDTO struct {
	Password string `json:"password" validate:"required,min=5"`
}

type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Phone     null.String `json:"phone"`
	Role      string      `json:"role"`
	IsActive  bool        `json:"isActive"`
	LastLogin null.Time   `json:"lastLogin"`
}

// CreatedUserDTO — ответ на создание менеджера: сам пользователь плюс
// токен активации, который админ передаёт новому сотруднику.
type CreatedUserDTO struct {
	User            UserDTO `json:"user"`
	ActivationToken string  `json:"activationToken"`
}

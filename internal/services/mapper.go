package services

import (
	"school-crm/internal/dto"
	"school-crm/internal/entities"
)

const timeLayout = "2006-01-02 15:04:05"

func toOrderDTO(o *entities.Order) *dto.OrderDTO {
	out := &dto.OrderDTO{
		ID:           o.ID,
		Name:         o.Name,
		Surname:      o.Surname,
		Email:        o.Email,
		Phone:        o.Phone,
		Age:          o.Age,
		Course:       o.Course,
		CourseFormat: o.CourseFormat,
		CourseType:   o.CourseType,
		Sum:          o.Sum,
		AlreadyPaid:  o.AlreadyPaid,
		Status:       o.Status,
		ManagerID:    o.ManagerID,
		GroupID:      o.GroupID,
		UTM:          o.UTM,
		Msg:          o.Msg,
		CreatedAt:    o.CreatedAt.Format(timeLayout),
	}
	if o.Group != nil {
		out.Group = &dto.GroupDTO{ID: o.Group.ID, Name: o.Group.Name}
	}
	if o.Manager != nil {
		out.Manager = &dto.ShortUserDTO{
			ID:        o.Manager.ID,
			Email:     o.Manager.Email,
			FirstName: o.Manager.FirstName,
			LastName:  o.Manager.LastName,
		}
	}
	return out
}

func toOrderDTOs(orders []entities.Order) []dto.OrderDTO {
	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *toOrderDTO(&orders[i]))
	}
	return out
}

func toCommentDTO(c *entities.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:        c.ID,
		Text:      c.Text,
		Author:    c.Author,
		OrderID:   c.OrderID,
		CreatedAt: c.CreatedAt.Format(timeLayout),
	}
}

func toCommentDTOs(comments []entities.Comment) []dto.CommentDTO {
	out := make([]dto.CommentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, *toCommentDTO(&comments[i]))
	}
	return out
}

func toUserDTO(u *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
	}
}

func toUserDTOs(users []entities.User) []dto.UserDTO {
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *toUserDTO(&users[i]))
	}
	return out
}

func toGroupDTO(g *entities.Group) *dto.GroupDTO {
	return &dto.GroupDTO{ID: g.ID, Name: g.Name}
}

func toGroupDTOs(groups []entities.Group) []dto.GroupDTO {
	out := make([]dto.GroupDTO, 0, len(groups))
	for i := range groups {
		out = append(out, *toGroupDTO(&groups[i]))
	}
	return out
}

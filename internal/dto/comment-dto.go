package dto

import "github.com/aarondl/null/v8"

type CreateCommentDTO struct {
	Text   string      `json:"text" validate:"required"`
	Author null.String `json:"author"`
}

type CommentDTO struct {
	ID        uint64      `json:"id"`
	Text      string      `json:"text"`
	Author    null.String `json:"author"`
	OrderID   uint64      `json:"orderId"`
	CreatedAt string      `json:"created_at"`
}

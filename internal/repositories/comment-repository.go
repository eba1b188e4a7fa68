package repositories

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-crm/internal/entities"
)

type CommentRepositoryInterface interface {
	CreateComment(ctx context.Context, orderID uint64, text string, author null.String) (*entities.Comment, error)
	GetCommentsByOrder(ctx context.Context, orderID uint64) ([]entities.Comment, error)
}

type CommentRepository struct {
	storage *pgxpool.Pool
}

func NewCommentRepository(storage *pgxpool.Pool) CommentRepositoryInterface {
	return &CommentRepository{storage: storage}
}

func (r *CommentRepository) CreateComment(ctx context.Context, orderID uint64, text string, author null.String) (*entities.Comment, error) {
	comment := entities.Comment{Text: text, Author: author, OrderID: orderID}
	err := r.storage.QueryRow(ctx,
		`INSERT INTO comments (text, author, order_id, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`,
		text, author, orderID,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания комментария: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) GetCommentsByOrder(ctx context.Context, orderID uint64) ([]entities.Comment, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, text, author, order_id, created_at FROM comments WHERE order_id = $1 ORDER BY created_at`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения комментариев заявки: %w", err)
	}
	defer rows.Close()

	comments := make([]entities.Comment, 0)
	for rows.Next() {
		var comment entities.Comment
		if err := rows.Scan(&comment.ID, &comment.Text, &comment.Author, &comment.OrderID, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

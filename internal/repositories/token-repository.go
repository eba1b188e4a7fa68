package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-crm/internal/entities"
	apperrors "school-crm/pkg/errors"
)

type TokenRepositoryInterface interface {
	ReplaceForUser(ctx context.Context, token *entities.Token) error
	FindByActivationToken(ctx context.Context, activationToken string) (*entities.Token, error)
	FindByUserID(ctx context.Context, userID uint64) (*entities.Token, error)
}

type TokenRepository struct {
	storage *pgxpool.Pool
}

func NewTokenRepository(storage *pgxpool.Pool) TokenRepositoryInterface {
	return &TokenRepository{storage: storage}
}

// ReplaceForUser — delete-then-insert: у пользователя живёт ровно одна
// актуальная запись токенов, новая вытесняет старую.
func (r *TokenRepository) ReplaceForUser(ctx context.Context, token *entities.Token) error {
	if _, err := r.storage.Exec(ctx, `DELETE FROM tokens WHERE user_id = $1`, token.UserID); err != nil {
		return fmt.Errorf("ошибка удаления старых токенов: %w", err)
	}

	err := r.storage.QueryRow(ctx,
		`INSERT INTO tokens (access_token, refresh_token, activation_token, user_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		token.AccessToken, token.RefreshToken, token.ActivationToken, token.UserID,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("ошибка сохранения токенов: %w", err)
	}
	return nil
}

func (r *TokenRepository) FindByActivationToken(ctx context.Context, activationToken string) (*entities.Token, error) {
	return r.findOne(ctx,
		`SELECT id, access_token, refresh_token, activation_token, user_id FROM tokens WHERE activation_token = $1`,
		activationToken)
}

func (r *TokenRepository) FindByUserID(ctx context.Context, userID uint64) (*entities.Token, error) {
	return r.findOne(ctx,
		`SELECT id, access_token, refresh_token, activation_token, user_id FROM tokens WHERE user_id = $1`,
		userID)
}

func (r *TokenRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.Token, error) {
	var token entities.Token
	var activation null.String
	err := r.storage.QueryRow(ctx, query, arg).
		Scan(&token.ID, &token.AccessToken, &token.RefreshToken, &activation, &token.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("ошибка поиска токена: %w", err)
	}
	token.ActivationToken = activation
	return &token, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-crm/internal/entities"
	apperrors "school-crm/pkg/errors"
)

type GroupRepositoryInterface interface {
	GetGroups(ctx context.Context) ([]entities.Group, error)
	FindGroup(ctx context.Context, id uint64) (*entities.Group, error)
	CreateGroup(ctx context.Context, name string) (*entities.Group, error)
}

type GroupRepository struct {
	storage *pgxpool.Pool
}

func NewGroupRepository(storage *pgxpool.Pool) GroupRepositoryInterface {
	return &GroupRepository{storage: storage}
}

func (r *GroupRepository) GetGroups(ctx context.Context) ([]entities.Group, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка групп: %w", err)
	}
	defer rows.Close()

	groups := make([]entities.Group, 0)
	for rows.Next() {
		var group entities.Group
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования группы: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) FindGroup(ctx context.Context, id uint64) (*entities.Group, error) {
	var group entities.Group
	err := r.storage.QueryRow(ctx, `SELECT id, name FROM groups WHERE id = $1`, id).
		Scan(&group.ID, &group.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска группы: %w", err)
	}
	return &group, nil
}

func (r *GroupRepository) CreateGroup(ctx context.Context, name string) (*entities.Group, error) {
	group := entities.Group{Name: name}
	err := r.storage.QueryRow(ctx,
		`INSERT INTO groups (name) VALUES ($1) RETURNING id`, name).Scan(&group.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflictError("Group with the same name already exists")
		}
		return nil, fmt.Errorf("ошибка создания группы: %w", err)
	}
	return &group, nil
}

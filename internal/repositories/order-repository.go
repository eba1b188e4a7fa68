package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "school-crm/internal/infrastructure/bd"
	"school-crm/internal/entities"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/types"
)

const orderSelectFields = `
	o.id, o.name, o.surname, o.email, o.phone, o.age,
	o.course, o.course_format, o.course_type, o.sum, o.already_paid,
	o.status, o.manager_id, o.group_id, o.utm, o.msg, o.created_at,
	g.id, g.name,
	m.id, m.email, m.first_name, m.last_name`

const orderJoinClause = `orders o
	LEFT JOIN groups g ON o.group_id = g.id
	LEFT JOIN users m ON o.manager_id = m.id`

// Поля из query-строки -> колонки. Имена слева — внешний контракт
// фильтра, менять их нельзя.
var orderFilterColumns = map[string]string{
	"id":            "o.id",
	"name":          "o.name",
	"surname":       "o.surname",
	"email":         "o.email",
	"phone":         "o.phone",
	"age":           "o.age",
	"course":        "o.course",
	"course_format": "o.course_format",
	"course_type":   "o.course_type",
	"sum":           "o.sum",
	"alreadyPaid":   "o.already_paid",
	"status":        "o.status",
	"utm":           "o.utm",
	"msg":           "o.msg",
	"group":         "g.name",
	"manager":       "m.last_name",
	"created_at":    "o.created_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, params types.ListParams) ([]entities.Order, uint64, error)
	GetOrdersByManager(ctx context.Context, managerID uint64) ([]entities.Order, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	UpdateOrder(ctx context.Context, id uint64, fields map[string]interface{}) error
	GetStatusCounts(ctx context.Context, managerID *uint64) (map[string]int, int, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var order entities.Order
	var groupID, managerID null.Int
	var groupName, managerEmail, managerFirstName, managerLastName null.String

	err := row.Scan(
		&order.ID, &order.Name, &order.Surname, &order.Email, &order.Phone, &order.Age,
		&order.Course, &order.CourseFormat, &order.CourseType, &order.Sum, &order.AlreadyPaid,
		&order.Status, &order.ManagerID, &order.GroupID, &order.UTM, &order.Msg, &order.CreatedAt,
		&groupID, &groupName,
		&managerID, &managerEmail, &managerFirstName, &managerLastName,
	)
	if err != nil {
		return nil, err
	}

	if groupID.Valid {
		order.Group = &entities.Group{ID: uint64(groupID.Int), Name: groupName.String}
	}
	if managerID.Valid {
		order.Manager = &entities.User{
			ID:        uint64(managerID.Int),
			Email:     managerEmail.String,
			FirstName: managerFirstName.String,
			LastName:  managerLastName.String,
		}
	}
	return &order, nil
}

// GetOrders возвращает страницу заявок по плану запроса и общее количество
// строк, подпадающих под фильтр.
func (r *OrderRepository) GetOrders(ctx context.Context, params types.ListParams) ([]entities.Order, uint64, error) {
	applyWhere := func(builder sq.SelectBuilder) sq.SelectBuilder {
		builder = db.ApplyConditions(builder, params.Conditions, orderFilterColumns)
		return db.ApplyDateRange(builder, "o.created_at", params.StartDate, params.EndDate)
	}

	countBuilder := applyWhere(
		sq.Select("COUNT(*)").From(orderJoinClause).PlaceholderFormat(sq.Dollar))
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчета заявок: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}

	selectBuilder := applyWhere(
		sq.Select(orderSelectFields).From(orderJoinClause).PlaceholderFormat(sq.Dollar))
	selectBuilder = db.ApplySort(selectBuilder, params.Sort, orderFilterColumns, "o.id")
	selectBuilder = db.ApplyPagination(selectBuilder, params.Limit, params.Offset)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в списке: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) GetOrdersByManager(ctx context.Context, managerID uint64) ([]entities.Order, error) {
	query, args, err := sq.Select(orderSelectFields).
		From(orderJoinClause).
		Where(sq.Eq{"o.manager_id": managerID}).
		OrderBy("o.id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса заявок менеджера: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок менеджера: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки менеджера: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query, args, err := sq.Select(orderSelectFields).
		From(orderJoinClause).
		Where(sq.Eq{"o.id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса заявки: %w", err)
	}

	order, err := scanOrder(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
	}
	return order, nil
}

// UpdateOrder пишет заранее собранный набор полей одним UPDATE.
// Частичных записей нет: либо весь набор, либо ничего.
func (r *OrderRepository) UpdateOrder(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	query, args, err := sq.Update("orders").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления заявки: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetStatusCounts группирует заявки по статусу; NULL считается как "new".
// managerID == nil — глобальная статистика.
func (r *OrderRepository) GetStatusCounts(ctx context.Context, managerID *uint64) (map[string]int, int, error) {
	builder := sq.Select("COALESCE(o.status, 'new') AS status", "COUNT(*)").
		From("orders o").
		GroupBy("COALESCE(o.status, 'new')").
		PlaceholderFormat(sq.Dollar)
	if managerID != nil {
		builder = builder.Where(sq.Eq{"o.manager_id": *managerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса статистики: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения статистики заявок: %w", err)
	}
	defer rows.Close()

	statusCount := make(map[string]int)
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования статистики: %w", err)
		}
		statusCount[status] = count
		total += count
	}
	return statusCount, total, rows.Err()
}

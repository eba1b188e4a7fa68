package db

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"school-crm/pkg/types"
)

// ApplyConditions накладывает скомпилированные условия фильтра на билдер.
// allowedMap отображает имена полей из query-строки на колонки; всё, чего
// в карте нет, молча пропускается.
func ApplyConditions(builder sq.SelectBuilder, conditions []types.Condition, allowedMap map[string]string) sq.SelectBuilder {
	for _, cond := range conditions {
		dbCol, ok := allowedMap[cond.Field]
		if !ok {
			continue
		}

		switch cond.Operator {
		case types.OpContains:
			builder = builder.Where(sq.ILike{dbCol: fmt.Sprintf("%%%v%%", cond.Value)})
		case types.OpEq:
			builder = builder.Where(sq.Eq{dbCol: cond.Value})
		case types.OpNeq:
			builder = builder.Where(sq.NotEq{dbCol: cond.Value})
		case types.OpGt:
			builder = builder.Where(sq.Gt{dbCol: cond.Value})
		case types.OpLt:
			builder = builder.Where(sq.Lt{dbCol: cond.Value})
		case types.OpGte:
			builder = builder.Where(sq.GtOrEq{dbCol: cond.Value})
		case types.OpLte:
			builder = builder.Where(sq.LtOrEq{dbCol: cond.Value})
		}
	}
	return builder
}

// ApplyDateRange — включающий диапазон по дате создания, границы опциональны.
func ApplyDateRange(builder sq.SelectBuilder, dbCol string, start, end *time.Time) sq.SelectBuilder {
	if start != nil {
		builder = builder.Where(sq.GtOrEq{dbCol: *start})
	}
	if end != nil {
		builder = builder.Where(sq.LtOrEq{dbCol: *end})
	}
	return builder
}

// ApplySort сортирует по разрешённой колонке, иначе по fallback.
func ApplySort(builder sq.SelectBuilder, sort types.Sort, allowedMap map[string]string, fallback string) sq.SelectBuilder {
	dbCol, ok := allowedMap[sort.Field]
	if !ok {
		dbCol = fallback
	}
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	return builder.OrderBy(fmt.Sprintf("%s %s", dbCol, direction))
}

func ApplyPagination(builder sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	return builder
}

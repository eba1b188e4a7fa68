package utils

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/types"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	DefaultSort  = "-id"
)

// Числовые поля заявки. Для них разрешены только операторы сравнения,
// значение обязано быть целым числом.
var numericFields = map[string]bool{
	"id":          true,
	"age":         true,
	"sum":         true,
	"alreadyPaid": true,
}

var numericOperators = map[string]types.Operator{
	"eq":  types.OpEq,
	"neq": types.OpNeq,
	"gt":  types.OpGt,
	"lt":  types.OpLt,
	"gte": types.OpGte,
	"lte": types.OpLte,
}

// CompileFilter компилирует строку фильтра в набор условий (AND).
// Грамматика: `field` | `field:value` | `field:operator:value`, термы через запятую.
func CompileFilter(expr string) ([]types.Condition, error) {
	if expr == "" {
		return nil, nil
	}

	var conditions []types.Condition
	for _, term := range strings.Split(expr, ",") {
		parts := strings.Split(term, ":")
		field := parts[0]

		switch len(parts) {
		case 1:
			// Голое имя поля условия не добавляет.
			continue

		case 2:
			// field:value — регистронезависимое вхождение подстроки.
			conditions = append(conditions, types.Condition{
				Field:    field,
				Operator: types.OpContains,
				Value:    strings.ToLower(parts[1]),
			})

		case 3:
			operator, value := parts[1], parts[2]

			if numericFields[field] {
				op, ok := numericOperators[operator]
				if !ok {
					return nil, apperrors.NewBadRequestError(
						"invalid operator '%s' for numeric field '%s'", operator, field)
				}
				parsed, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return nil, apperrors.NewBadRequestError(
						"invalid numeric value '%s' for field '%s'", value, field)
				}
				conditions = append(conditions, types.Condition{Field: field, Operator: op, Value: parsed})
				continue
			}

			if operator == "like" {
				conditions = append(conditions, types.Condition{
					Field:    field,
					Operator: types.OpContains,
					Value:    strings.ToLower(value),
				})
				continue
			}

			// Неизвестный оператор на строковом поле уходит в хранилище
			// как обычное равенство.
			conditions = append(conditions, types.Condition{Field: field, Operator: types.OpEq, Value: value})

		default:
			return nil, apperrors.NewBadRequestError("invalid filter term '%s'", term)
		}
	}

	return conditions, nil
}

// ParseListParams нормализует параметры списка в детерминированный план.
// Невалидные page/limit молча падают в значения по умолчанию, ошибкой
// является только некорректная строка фильтра.
func ParseListParams(values url.Values) (types.ListParams, error) {
	params := types.ListParams{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		params.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		params.Limit = l
	}
	params.Offset = (params.Page - 1) * params.Limit

	params.Sort = parseSort(values.Get("sort"))

	conditions, err := CompileFilter(values.Get("filter"))
	if err != nil {
		return types.ListParams{}, err
	}
	params.Conditions = conditions

	params.StartDate = parseDate(values.Get("startDate"))
	params.EndDate = parseDate(values.Get("endDate"))

	return params, nil
}

func parseSort(sort string) types.Sort {
	if sort == "" {
		sort = DefaultSort
	}

	if strings.HasPrefix(sort, "-") {
		return types.Sort{Field: strings.TrimPrefix(sort, "-"), Desc: true}
	}
	if strings.Contains(sort, ":") {
		parts := strings.SplitN(sort, ":", 2)
		return types.Sort{Field: parts[0], Desc: strings.EqualFold(parts[1], "desc")}
	}
	return types.Sort{Field: sort, Desc: false}
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	return nil
}

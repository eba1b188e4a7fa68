package db

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-crm/pkg/types"
)

var testColumns = map[string]string{
	"name": "o.name",
	"age":  "o.age",
}

func baseQuery() sq.SelectBuilder {
	return sq.Select("o.id").From("orders o").PlaceholderFormat(sq.Dollar)
}

func TestApplyConditions_ContainsBecomesILike(t *testing.T) {
	builder := ApplyConditions(baseQuery(), []types.Condition{
		{Field: "name", Operator: types.OpContains, Value: "tom"},
	}, testColumns)

	query, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.name ILIKE $1")
	assert.Equal(t, []interface{}{"%tom%"}, args)
}

func TestApplyConditions_NumericOperators(t *testing.T) {
	builder := ApplyConditions(baseQuery(), []types.Condition{
		{Field: "age", Operator: types.OpGte, Value: int64(18)},
		{Field: "age", Operator: types.OpLt, Value: int64(40)},
	}, testColumns)

	query, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.age >= $1")
	assert.Contains(t, query, "o.age < $2")
	assert.Equal(t, []interface{}{int64(18), int64(40)}, args)
}

func TestApplyConditions_UnknownFieldIsSkipped(t *testing.T) {
	builder := ApplyConditions(baseQuery(), []types.Condition{
		{Field: "password", Operator: types.OpEq, Value: "x"},
	}, testColumns)

	query, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "password")
	assert.Empty(t, args)
}

func TestApplyDateRange_InclusiveBounds(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	builder := ApplyDateRange(baseQuery(), "o.created_at", &start, &end)
	query, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.created_at >= $1")
	assert.Contains(t, query, "o.created_at <= $2")
	assert.Len(t, args, 2)
}

func TestApplySort_FallsBackOnUnknownColumn(t *testing.T) {
	builder := ApplySort(baseQuery(), types.Sort{Field: "hacker", Desc: true}, testColumns, "o.id")
	query, _, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY o.id DESC")
}

func TestApplySort_AllowedColumn(t *testing.T) {
	builder := ApplySort(baseQuery(), types.Sort{Field: "age", Desc: false}, testColumns, "o.id")
	query, _, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY o.age ASC")
}

func TestApplyPagination(t *testing.T) {
	builder := ApplyPagination(baseQuery(), 25, 50)
	query, _, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "LIMIT 25")
	assert.Contains(t, query, "OFFSET 50")
}

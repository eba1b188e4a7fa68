package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/types"
)

func TestCompileFilter_ContainsIsCaseInsensitive(t *testing.T) {
	conditions, err := CompileFilter("name:TaRaS")
	require.NoError(t, err)
	require.Len(t, conditions, 1)

	assert.Equal(t, "name", conditions[0].Field)
	assert.Equal(t, types.OpContains, conditions[0].Operator)
	assert.Equal(t, "taras", conditions[0].Value)
}

func TestCompileFilter_NumericOperator(t *testing.T) {
	conditions, err := CompileFilter("age:gte:18")
	require.NoError(t, err)
	require.Len(t, conditions, 1)

	assert.Equal(t, "age", conditions[0].Field)
	assert.Equal(t, types.OpGte, conditions[0].Operator)
	assert.Equal(t, int64(18), conditions[0].Value)
}

func TestCompileFilter_NumericValueMustBeInteger(t *testing.T) {
	_, err := CompileFilter("age:gte:abc")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestCompileFilter_UnknownOperatorOnNumericField(t *testing.T) {
	_, err := CompileFilter("sum:like:100")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestCompileFilter_LikeOnStringFieldMeansContains(t *testing.T) {
	conditions, err := CompileFilter("email:like:GMAIL")
	require.NoError(t, err)
	require.Len(t, conditions, 1)

	assert.Equal(t, types.OpContains, conditions[0].Operator)
	assert.Equal(t, "gmail", conditions[0].Value)
}

func TestCompileFilter_UnknownOperatorOnStringFieldMeansEquality(t *testing.T) {
	conditions, err := CompileFilter("status:what:agree")
	require.NoError(t, err)
	require.Len(t, conditions, 1)

	assert.Equal(t, types.OpEq, conditions[0].Operator)
	assert.Equal(t, "agree", conditions[0].Value)
}

func TestCompileFilter_BareFieldAddsNothing(t *testing.T) {
	conditions, err := CompileFilter("name")
	require.NoError(t, err)
	assert.Empty(t, conditions)
}

func TestCompileFilter_MultipleTermsAreANDed(t *testing.T) {
	conditions, err := CompileFilter("name:an,age:gt:20,course:FS")
	require.NoError(t, err)
	assert.Len(t, conditions, 3)
}

func TestParseListParams_Defaults(t *testing.T) {
	params, err := ParseListParams(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, types.Sort{Field: "id", Desc: true}, params.Sort)
	assert.Empty(t, params.Conditions)
	assert.Nil(t, params.StartDate)
	assert.Nil(t, params.EndDate)
}

func TestParseListParams_InvalidValuesFallBackSilently(t *testing.T) {
	values := url.Values{}
	values.Set("page", "banana")
	values.Set("limit", "-5")
	values.Set("sort", "")

	params, err := ParseListParams(values)
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, types.Sort{Field: "id", Desc: true}, params.Sort)
}

func TestParseListParams_OffsetFollowsPage(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "10")

	params, err := ParseListParams(values)
	require.NoError(t, err)

	assert.Equal(t, 20, params.Offset)
}

func TestParseListParams_SortSyntaxes(t *testing.T) {
	cases := []struct {
		raw  string
		want types.Sort
	}{
		{"-created_at", types.Sort{Field: "created_at", Desc: true}},
		{"age:desc", types.Sort{Field: "age", Desc: true}},
		{"age:asc", types.Sort{Field: "age", Desc: false}},
		{"surname", types.Sort{Field: "surname", Desc: false}},
	}

	for _, tc := range cases {
		values := url.Values{}
		values.Set("sort", tc.raw)

		params, err := ParseListParams(values)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, params.Sort, tc.raw)
	}
}

// Повторный прогон уже нормализованных параметров ничего не меняет.
func TestParseListParams_Idempotent(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("limit", "50")
	values.Set("sort", "-age")

	first, err := ParseListParams(values)
	require.NoError(t, err)

	second, err := ParseListParams(values)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseListParams_InvalidFilterIsAnError(t *testing.T) {
	values := url.Values{}
	values.Set("filter", "id:between:1:10")

	_, err := ParseListParams(values)
	require.Error(t, err)
}

func TestParseListParams_DateRange(t *testing.T) {
	values := url.Values{}
	values.Set("startDate", "2026-01-01")
	values.Set("endDate", "2026-02-01")

	params, err := ParseListParams(values)
	require.NoError(t, err)

	require.NotNil(t, params.StartDate)
	require.NotNil(t, params.EndDate)
	assert.Equal(t, "2026-01-01", params.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-02-01", params.EndDate.Format("2006-01-02"))
}

package types

import "time"

// Operator is a comparison kind of a single filter condition.
type Operator string

const (
	OpContains Operator = "contains"
	OpEq       Operator = "eq"
	OpNeq      Operator = "neq"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpGte      Operator = "gte"
	OpLte      Operator = "lte"
)

// Condition represents one predicate of the filter query string.
// Conditions are combined with AND by the storage layer.
type Condition struct {
	Field    string
	Operator Operator
	// Value is a string for substring matches and an int64 for numeric operators.
	Value interface{}
}

// Sort describes the requested ordering.
type Sort struct {
	Field string
	Desc  bool
}

// ListParams is the normalized query plan for list endpoints:
// pagination, ordering, compiled filter conditions and an inclusive
// creation-date range (open-ended when a bound is nil).
type ListParams struct {
	Page       int
	Limit      int
	Offset     int
	Sort       Sort
	Conditions []Condition
	StartDate  *time.Time
	EndDate    *time.Time
}

// Pagination represents pagination metadata of a list response.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/orders?page=2&limit=25&sort=-id&filter=name:tom,age:gte:18&startDate=2024-01-01

package entities

import "github.com/aarondl/null/v8"

// Token — актуальная пара токенов пользователя (1:1, последняя запись
// вытесняет предыдущую: delete-then-insert).
type Token struct {
	ID              uint64
	AccessToken     string
	RefreshToken    string
	ActivationToken null.String
	UserID          uint64
}

package utils

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aarondl/null/v8"

	"school-crm/pkg/contextkeys"
	apperrors "school-crm/pkg/errors"
)

// CapitalizeFirstLetter — первая буква в верхний регистр, остальное не трогаем.
func CapitalizeFirstLetter(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}

func GetIsActiveFromCtx(ctx context.Context) bool {
	isActive, ok := ctx.Value(contextkeys.IsActiveKey).(bool)
	return ok && isActive
}

func NullIntToUint64Ptr(n null.Int) *uint64 {
	if !n.Valid {
		return nil
	}
	v := uint64(n.Int)
	return &v
}

func Uint64ToNullInt(id uint64) null.Int {
	if id == 0 {
		return null.Int{}
	}
	return null.IntFrom(int(id))
}

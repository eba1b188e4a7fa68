package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"school-crm/pkg/constants"
)

type User struct {
	ID        uint64
	Email     string
	FirstName string
	LastName  string
	Phone     null.String
	Password  null.String
	Role      string
	IsActive  bool
	LastLogin null.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanLogin — админ считается активным всегда.
func (u *User) CanLogin() bool {
	return u.IsActive || u.Role == constants.RoleAdmin
}

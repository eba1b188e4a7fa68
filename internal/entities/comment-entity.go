package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Comment привязан ровно к одной заявке. Author — произвольная подпись,
// не внешний ключ на users.
type Comment struct {
	ID        uint64
	Text      string
	Author    null.String
	OrderID   uint64
	CreatedAt time.Time
}

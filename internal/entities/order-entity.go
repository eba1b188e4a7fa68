package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Order — заявка абитуриента. Заводится внешней формой захвата лидов,
// ядро её только читает и обновляет, жёсткого удаления нет.
type Order struct {
	ID           uint64
	Name         null.String
	Surname      null.String
	Email        null.String
	Phone        null.String
	Age          null.Int
	Course       null.String
	CourseFormat null.String
	CourseType   null.String
	Sum          null.Int
	AlreadyPaid  null.Int
	Status       null.String
	ManagerID    null.Int
	GroupID      null.Int
	UTM          null.String
	Msg          null.String
	CreatedAt    time.Time

	// Подтянутые связи (LEFT JOIN).
	Group   *Group
	Manager *User
}

// IsClaimed — заявка закреплена за менеджером.
func (o *Order) IsClaimed() bool {
	return o.ManagerID.Valid
}

package dto

import "github.com/aarondl/null/v8"

// UpdateOrderDTO — частичное обновление заявки. null-типы различают
// "поле не прислали" (Valid=false) и прислали значение.
type UpdateOrderDTO struct {
	Name         null.String `json:"name"`
	Surname      null.String `json:"surname"`
	Email        null.String `json:"email" validate:"omitempty,email"`
	Phone        null.String `json:"phone"`
	Age          null.Int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	Course       null.String `json:"course"`
	CourseFormat null.String `json:"course_format"`
	CourseType   null.String `json:"course_type"`
	Sum          null.Int    `json:"sum" validate:"omitempty,gte=0"`
	AlreadyPaid  null.Int    `json:"alreadyPaid" validate:"omitempty,gte=0"`
	Status       null.String `json:"status"`
	GroupID      null.Int    `json:"groupId"`
	ManagerID    null.Int    `json:"managerId"`
	UTM          null.String `json:"utm"`
	Msg          null.String `json:"msg"`
}

// HasPatchFields — прислано ли хоть одно поле помимо статуса и связей.
func (d *UpdateOrderDTO) HasPatchFields() bool {
	return d.Name.Valid || d.Surname.Valid || d.Email.Valid || d.Phone.Valid ||
		d.Age.Valid || d.Course.Valid || d.CourseFormat.Valid || d.CourseType.Valid ||
		d.Sum.Valid || d.AlreadyPaid.Valid || d.UTM.Valid || d.Msg.Valid
}

type ShortUserDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type GroupDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type OrderDTO struct {
	ID           uint64        `json:"id"`
	Name         null.String   `json:"name"`
	Surname      null.String   `json:"surname"`
	Email        null.String   `json:"email"`
	Phone        null.String   `json:"phone"`
	Age          null.Int      `json:"age"`
	Course       null.String   `json:"course"`
	CourseFormat null.String   `json:"course_format"`
	CourseType   null.String   `json:"course_type"`
	Sum          null.Int      `json:"sum"`
	AlreadyPaid  null.Int      `json:"alreadyPaid"`
	Status       null.String   `json:"status"`
	ManagerID    null.Int      `json:"managerId"`
	GroupID      null.Int      `json:"groupId"`
	UTM          null.String   `json:"utm"`
	Msg          null.String   `json:"msg"`
	CreatedAt    string        `json:"created_at"`
	Group        *GroupDTO     `json:"group,omitempty"`
	Manager      *ShortUserDTO `json:"manager,omitempty"`
}

// OrderStatisticsDTO — агрегат по статусам. Заявки без статуса
// считаются новыми.
type OrderStatisticsDTO struct {
	OrderCount  int            `json:"orderCount"`
	StatusCount map[string]int `json:"statusCount"`
}

// internal/authz/permissions.go
package authz

// --- ОПЕРАЦИИ ЯДРА ---

type Operation string

const (
	// Заявки (Orders)
	OrdersView       Operation = "orders:view"
	OrdersUpdate     Operation = "orders:update"
	OrdersComment    Operation = "orders:comment"
	OrdersExport     Operation = "orders:export"
	OrdersStatistics Operation = "orders:statistics"

	// Пользователи (Users)
	UsersManage Operation = "users:manage"

	// Группы (Groups)
	GroupsManage Operation = "groups:manage"
)

// Ownership — отношение актора к конкретной заявке.
type Ownership int

const (
	// OwnershipNone — операция без конкретной заявки (списки, статистика).
	OwnershipNone Ownership = iota
	// OwnershipUnclaimed — заявка никем не взята (manager_id IS NULL).
	OwnershipUnclaimed
	// OwnershipOwn — заявка закреплена за самим актором.
	OwnershipOwn
	// OwnershipForeign — заявка закреплена за другим менеджером.
	OwnershipForeign
)

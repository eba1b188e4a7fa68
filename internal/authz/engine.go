package authz

import (
	"context"

	"github.com/aarondl/null/v8"

	"school-crm/pkg/constants"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/utils"
)

// Actor — аутентифицированный пользователь из claims токена.
type Actor struct {
	ID       uint64
	Role     string
	IsActive bool
}

// ActorFromContext собирает актора из значений, положенных auth-middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return Actor{}, err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return Actor{}, err
	}
	return Actor{
		ID:       userID,
		Role:     role,
		IsActive: utils.GetIsActiveFromCtx(ctx),
	}, nil
}

// Декларативная таблица прав {роль × операция × владение} -> allow.
// Вся ролевая логика ядра живёт здесь, сервисы её не дублируют.
var capabilities = map[string]map[Operation]map[Ownership]bool{
	constants.RoleAdmin: {
		OrdersView:       anyOwnership(),
		OrdersUpdate:     anyOwnership(),
		OrdersComment:    anyOwnership(),
		OrdersExport:     anyOwnership(),
		OrdersStatistics: anyOwnership(),
		UsersManage:      anyOwnership(),
		GroupsManage:     anyOwnership(),
	},
	constants.RoleManager: {
		OrdersView:   anyOwnership(),
		OrdersExport: anyOwnership(),
		OrdersUpdate: {
			OwnershipNone:      true,
			OwnershipUnclaimed: true,
			OwnershipOwn:       true,
			OwnershipForeign:   false,
		},
		OrdersComment: {
			OwnershipNone:      true,
			OwnershipUnclaimed: true,
			OwnershipOwn:       true,
			OwnershipForeign:   false,
		},
		OrdersStatistics: {},
		UsersManage:      {},
		GroupsManage:     anyOwnership(),
	},
}

// Мутирующие операции: для них заблокированный не-админ отклоняется сразу.
var mutatingOperations = map[Operation]bool{
	OrdersUpdate:  true,
	OrdersComment: true,
	UsersManage:   true,
	GroupsManage:  true,
}

func anyOwnership() map[Ownership]bool {
	return map[Ownership]bool{
		OwnershipNone:      true,
		OwnershipUnclaimed: true,
		OwnershipOwn:       true,
		OwnershipForeign:   true,
	}
}

// OwnershipOf классифицирует отношение актора к заявке по manager_id.
func OwnershipOf(actor Actor, managerID null.Int) Ownership {
	if !managerID.Valid {
		return OwnershipUnclaimed
	}
	if uint64(managerID.Int) == actor.ID {
		return OwnershipOwn
	}
	return OwnershipForeign
}

// CanDo — чистая проверка по таблице прав.
func CanDo(actor Actor, op Operation, ownership Ownership) bool {
	ops, ok := capabilities[actor.Role]
	if !ok {
		return false
	}
	ownerships, ok := ops[op]
	if !ok {
		return false
	}
	return ownerships[ownership]
}

// Require проверяет таблицу и возвращает ошибку с каноническим сообщением.
func Require(actor Actor, op Operation, ownership Ownership) error {
	if mutatingOperations[op] && !actor.IsActive && actor.Role != constants.RoleAdmin {
		return apperrors.NewForbiddenError(
			"You have been blocked by the admin. Contact him, and don't forget to bring him a chocolate bar")
	}

	if CanDo(actor, op, ownership) {
		return nil
	}

	switch op {
	case OrdersUpdate:
		// Чужая закреплённая заявка.
		return apperrors.NewUnauthorizedError(
			"You are not allowed to update this order. It's order of another manager.")
	case OrdersStatistics:
		return apperrors.NewForbiddenError("Only admins can access order statistics")
	case OrdersComment:
		if actor.Role != constants.RoleAdmin && actor.Role != constants.RoleManager {
			return apperrors.NewForbiddenError("User does not have permission to create a comment")
		}
		return apperrors.NewBadRequestError(
			"Cannot add comment to an order with an assigned manager")
	default:
		return apperrors.ErrForbidden
	}
}

package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"school-crm/internal/authz"
	"school-crm/internal/dto"
	"school-crm/internal/entities"
	"school-crm/internal/repositories"
	"school-crm/pkg/constants"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/types"
	"school-crm/pkg/utils"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, params types.ListParams) ([]dto.OrderDTO, uint64, error)
	GetOrdersByManager(ctx context.Context, managerID uint64) ([]dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, id uint64, patch dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	GetOrderStatistics(ctx context.Context) (*dto.OrderStatisticsDTO, error)
	GetOrderStatisticsByUser(ctx context.Context, userID uint64) (*dto.OrderStatisticsDTO, error)
}

type OrderService struct {
	orderRepo repositories.OrderRepositoryInterface
	groupRepo repositories.GroupRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	logger    *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	groupRepo repositories.GroupRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo: orderRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (s *OrderService) GetOrders(ctx context.Context, params types.ListParams) ([]dto.OrderDTO, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return toOrderDTOs(orders), total, nil
}

func (s *OrderService) GetOrdersByManager(ctx context.Context, managerID uint64) ([]dto.OrderDTO, error) {
	orders, err := s.orderRepo.GetOrdersByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return toOrderDTOs(orders), nil
}

// UpdateOrder проводит заявку через машину состояний. Весь новый набор
// полей считается в памяти и уходит в хранилище одной записью.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint64, patch dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	if err := authz.Require(actor, authz.OrdersUpdate, authz.OwnershipOf(actor, order.ManagerID)); err != nil {
		s.logger.Warn("Попытка обновить чужую заявку",
			zap.Uint64("orderId", id), zap.Uint64("actorId", actor.ID))
		return nil, err
	}

	updates, err := s.buildUpdateFields(patch)
	if err != nil {
		return nil, err
	}

	if err := s.applyStatusTransition(updates, order, patch, actor); err != nil {
		return nil, err
	}

	if err := s.resolveRelations(ctx, updates, patch); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateOrder(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(updated), nil
}

// buildUpdateFields валидирует и нормализует скалярные поля патча.
// Связи (group_id, manager_id) и статус обрабатываются отдельно.
func (s *OrderService) buildUpdateFields(patch dto.UpdateOrderDTO) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if patch.Name.Valid {
		updates["name"] = utils.CapitalizeFirstLetter(patch.Name.String)
	}
	if patch.Surname.Valid {
		updates["surname"] = utils.CapitalizeFirstLetter(patch.Surname.String)
	}
	if patch.Email.Valid {
		updates["email"] = strings.ToLower(patch.Email.String)
	}
	if patch.Phone.Valid {
		updates["phone"] = patch.Phone.String
	}
	if patch.Age.Valid {
		updates["age"] = patch.Age.Int
	}
	if patch.Sum.Valid {
		updates["sum"] = patch.Sum.Int
	}
	if patch.AlreadyPaid.Valid {
		updates["already_paid"] = patch.AlreadyPaid.Int
	}
	if patch.UTM.Valid {
		updates["utm"] = patch.UTM.String
	}
	if patch.Msg.Valid {
		updates["msg"] = patch.Msg.String
	}

	if patch.Course.Valid {
		course := strings.ToUpper(patch.Course.String)
		if !constants.IsValidCourse(course) {
			return nil, apperrors.NewBadRequestError(
				"Invalid course value. You can write only such options: %s",
				strings.Join(constants.Courses, ", "))
		}
		updates["course"] = course
	}
	if patch.CourseFormat.Valid {
		courseFormat := strings.ToLower(patch.CourseFormat.String)
		if !constants.IsValidCourseFormat(courseFormat) {
			return nil, apperrors.NewBadRequestError(
				"Invalid course format value. You can write only such options: %s",
				strings.Join(constants.CourseFormats, ", "))
		}
		updates["course_format"] = courseFormat
	}
	if patch.CourseType.Valid {
		courseType := strings.ToLower(patch.CourseType.String)
		if !constants.IsValidCourseType(courseType) {
			return nil, apperrors.NewBadRequestError(
				"Invalid course type value. You can write only such options: %s",
				strings.Join(constants.CourseTypes, ", "))
		}
		updates["course_type"] = courseType
	}

	return updates, nil
}

// applyStatusTransition — именованные переходы машины состояний:
// release (статус new снимает менеджера), claim (любой другой явный статус
// закрепляет заявку за актором), touch-promote (правка без статуса
// переводит незавершённую заявку в in_work и забирает её, если свободна).
func (s *OrderService) applyStatusTransition(updates map[string]interface{}, order *entities.Order, patch dto.UpdateOrderDTO, actor authz.Actor) error {
	if patch.Status.Valid {
		status := strings.ToLower(patch.Status.String)
		if !constants.IsValidStatus(status) {
			return apperrors.NewBadRequestError(
				"Invalid status value. You can write only such options: %s",
				strings.Join(constants.OrderStatuses, ", "))
		}
		updates["status"] = status
		if status == constants.StatusNew {
			// release: заявка возвращается в общий пул
			updates["manager_id"] = nil
		} else {
			// claim: актор становится (или остаётся) менеджером
			updates["manager_id"] = actor.ID
		}
		return nil
	}

	if order.Status.String != constants.StatusInWork {
		updates["status"] = constants.StatusInWork
	}
	// touch-promote закрепляет только свободную заявку: правка чужой
	// заявки админом менеджера не перебивает
	if !order.IsClaimed() && (patch.HasPatchFields() || patch.GroupID.Valid) {
		updates["manager_id"] = actor.ID
	}
	return nil
}

// resolveRelations проверяет внешние ключи патча. Явный managerId
// перекрывает назначение, выведенное из статусного перехода.
func (s *OrderService) resolveRelations(ctx context.Context, updates map[string]interface{}, patch dto.UpdateOrderDTO) error {
	if patch.GroupID.Valid {
		if _, err := s.groupRepo.FindGroup(ctx, uint64(patch.GroupID.Int)); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewBadRequestError("Please provide an existing groupId.")
			}
			return err
		}
		updates["group_id"] = patch.GroupID.Int
	}

	if patch.ManagerID.Valid {
		manager, err := s.userRepo.FindUserByID(ctx, uint64(patch.ManagerID.Int))
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return apperrors.NewBadRequestError("Please provide an existing managerId.")
			}
			return err
		}
		if manager.Role != constants.RoleAdmin && manager.Role != constants.RoleManager {
			return apperrors.NewBadRequestError("Please provide an existing managerId.")
		}
		updates["manager_id"] = patch.ManagerID.Int
	}

	return nil
}

func (s *OrderService) GetOrderStatistics(ctx context.Context) (*dto.OrderStatisticsDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.OrdersStatistics, authz.OwnershipNone); err != nil {
		return nil, err
	}

	statusCount, total, err := s.orderRepo.GetStatusCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatisticsDTO{OrderCount: total, StatusCount: statusCount}, nil
}

func (s *OrderService) GetOrderStatisticsByUser(ctx context.Context, userID uint64) (*dto.OrderStatisticsDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.OrdersStatistics, authz.OwnershipNone); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}

	statusCount, total, err := s.orderRepo.GetStatusCounts(ctx, &userID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatisticsDTO{OrderCount: total, StatusCount: statusCount}, nil
}

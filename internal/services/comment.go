package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"school-crm/internal/authz"
	"school-crm/internal/dto"
	"school-crm/internal/repositories"
	"school-crm/pkg/constants"
	apperrors "school-crm/pkg/errors"
)

type CommentServiceInterface interface {
	CreateComment(ctx context.Context, orderID uint64, payload dto.CreateCommentDTO) (*dto.CommentDTO, error)
	GetOrderComments(ctx context.Context, orderID uint64) ([]dto.CommentDTO, error)
}

type CommentService struct {
	commentRepo repositories.CommentRepositoryInterface
	orderRepo   repositories.OrderRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	logger      *zap.Logger
}

func NewCommentService(
	commentRepo repositories.CommentRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) CommentServiceInterface {
	return &CommentService{
		commentRepo: commentRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateComment добавляет комментарий к заявке. Комментарий к свободной
// заявке одновременно закрепляет её за актором и переводит в in_work.
func (s *CommentService) CreateComment(ctx context.Context, orderID uint64, payload dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	ownership := authz.OwnershipOf(actor, order.ManagerID)
	if err := authz.Require(actor, authz.OrdersComment, ownership); err != nil {
		return nil, err
	}

	author := payload.Author
	if !author.Valid {
		if user, uerr := s.userRepo.FindUserByID(ctx, actor.ID); uerr == nil {
			author = null.StringFrom(fmt.Sprintf("%s %s", user.FirstName, user.LastName))
		}
	}

	created, err := s.commentRepo.CreateComment(ctx, orderID, payload.Text, author)
	if err != nil {
		return nil, err
	}

	// Побочный эффект комментария: свободная заявка забирается в работу.
	if !order.IsClaimed() {
		updates := map[string]interface{}{
			"manager_id": actor.ID,
			"status":     constants.StatusInWork,
		}
		if err := s.orderRepo.UpdateOrder(ctx, orderID, updates); err != nil {
			s.logger.Error("Не удалось закрепить заявку после комментария",
				zap.Uint64("orderId", orderID), zap.Error(err))
			return nil, err
		}
	}

	return toCommentDTO(created), nil
}

func (s *CommentService) GetOrderComments(ctx context.Context, orderID uint64) ([]dto.CommentDTO, error) {
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	comments, err := s.commentRepo.GetCommentsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"school-crm/internal/dto"
	"school-crm/internal/entities"
	"school-crm/pkg/constants"
	apperrors "school-crm/pkg/errors"
)

type fakeCommentRepo struct {
	comments []entities.Comment
}

func (r *fakeCommentRepo) CreateComment(ctx context.Context, orderID uint64, text string, author null.String) (*entities.Comment, error) {
	comment := entities.Comment{
		ID:        uint64(len(r.comments) + 1),
		Text:      text,
		Author:    author,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}
	r.comments = append(r.comments, comment)
	return &comment, nil
}

func (r *fakeCommentRepo) GetCommentsByOrder(ctx context.Context, orderID uint64) ([]entities.Comment, error) {
	var out []entities.Comment
	for _, c := range r.comments {
		if c.OrderID == orderID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCommentService(commentRepo *fakeCommentRepo, orderRepo *fakeOrderRepo, userRepo *fakeUserRepo) CommentServiceInterface {
	return NewCommentService(commentRepo, orderRepo, userRepo, zap.NewNop())
}

func TestCreateComment_ClaimsUnclaimedOrder(t *testing.T) {
	orderRepo := newFakeOrderRepo(unclaimedOrder(1))
	userRepo := newFakeUserRepo(&entities.User{
		ID: 10, FirstName: "Anna", LastName: "Ivanova",
		Role: constants.RoleManager, IsActive: true,
	})
	svc := newCommentService(&fakeCommentRepo{}, orderRepo, userRepo)

	comment, err := svc.CreateComment(ctxForUser(10, constants.RoleManager, true), 1, dto.CreateCommentDTO{
		Text: "called, call back tomorrow",
	})
	require.NoError(t, err)

	assert.Equal(t, "called, call back tomorrow", comment.Text)
	// Автор подставлен из профиля актора.
	assert.Equal(t, "Anna Ivanova", comment.Author.String)

	order := orderRepo.orders[1]
	require.True(t, order.ManagerID.Valid)
	assert.Equal(t, 10, order.ManagerID.Int)
	assert.Equal(t, constants.StatusInWork, order.Status.String)
}

func TestCreateComment_OwnOrderDoesNotReassign(t *testing.T) {
	orderRepo := newFakeOrderRepo(claimedOrder(1, 10, "agree"))
	svc := newCommentService(&fakeCommentRepo{}, orderRepo, newFakeUserRepo())

	_, err := svc.CreateComment(ctxForUser(10, constants.RoleManager, true), 1, dto.CreateCommentDTO{
		Text:   "second call",
		Author: null.StringFrom("A.I."),
	})
	require.NoError(t, err)

	// Статус и менеджер не меняются: заявка уже в работе у актора.
	order := orderRepo.orders[1]
	assert.Equal(t, "agree", order.Status.String)
	assert.Equal(t, 10, order.ManagerID.Int)
}

func TestCreateComment_ForeignOrderRejectedForManager(t *testing.T) {
	orderRepo := newFakeOrderRepo(claimedOrder(1, 10, constants.StatusInWork))
	svc := newCommentService(&fakeCommentRepo{}, orderRepo, newFakeUserRepo())

	_, err := svc.CreateComment(ctxForUser(20, constants.RoleManager, true), 1, dto.CreateCommentDTO{
		Text: "hello",
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Equal(t, "Cannot add comment to an order with an assigned manager", httpErr.Message)
}

func TestCreateComment_ClaimThenForeignCommentFails(t *testing.T) {
	orderRepo := newFakeOrderRepo(unclaimedOrder(1))
	userRepo := newFakeUserRepo(&entities.User{
		ID: 10, FirstName: "Anna", LastName: "Ivanova",
		Role: constants.RoleManager, IsActive: true,
	})
	svc := newCommentService(&fakeCommentRepo{}, orderRepo, userRepo)

	_, err := svc.CreateComment(ctxForUser(10, constants.RoleManager, true), 1, dto.CreateCommentDTO{Text: "first"})
	require.NoError(t, err)

	// Второй менеджер опоздал: заявка уже закреплена первым комментарием.
	_, err = svc.CreateComment(ctxForUser(20, constants.RoleManager, true), 1, dto.CreateCommentDTO{Text: "second"})
	require.Error(t, err)
}

func TestCreateComment_OrderNotFound(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, newFakeOrderRepo(), newFakeUserRepo())

	_, err := svc.CreateComment(ctxForUser(10, constants.RoleManager, true), 99, dto.CreateCommentDTO{Text: "hi"})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestGetOrderComments_ReturnsOnlyOrderComments(t *testing.T) {
	orderRepo := newFakeOrderRepo(unclaimedOrder(1), unclaimedOrder(2))
	commentRepo := &fakeCommentRepo{}
	userRepo := newFakeUserRepo(&entities.User{ID: 10, Role: constants.RoleManager, IsActive: true})
	svc := newCommentService(commentRepo, orderRepo, userRepo)

	ctx := ctxForUser(10, constants.RoleManager, true)
	_, err := svc.CreateComment(ctx, 1, dto.CreateCommentDTO{Text: "first"})
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, 2, dto.CreateCommentDTO{Text: "other order"})
	require.NoError(t, err)

	comments, err := svc.GetOrderComments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Text)
}

package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"school-crm/internal/dto"
	"school-crm/internal/entities"
	"school-crm/pkg/constants"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/service"
)

type fakeTokenRepo struct {
	byUser map[uint64]*entities.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byUser: make(map[uint64]*entities.Token)}
}

func (r *fakeTokenRepo) ReplaceForUser(ctx context.Context, token *entities.Token) error {
	token.ID = uint64(len(r.byUser) + 1)
	r.byUser[token.UserID] = token
	return nil
}

func (r *fakeTokenRepo) FindByActivationToken(ctx context.Context, activationToken string) (*entities.Token, error) {
	for _, token := range r.byUser {
		if token.ActivationToken.Valid && token.ActivationToken.String == activationToken {
			return token, nil
		}
	}
	return nil, apperrors.ErrTokenNotFound
}

func (r *fakeTokenRepo) FindByUserID(ctx context.Context, userID uint64) (*entities.Token, error) {
	token, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return token, nil
}

type fakeJWTService struct {
	counter int
}

func (s *fakeJWTService) GenerateTokens(userID uint64, role string, isActive bool) (string, string, error) {
	s.counter++
	return fmt.Sprintf("access-%d-%d", userID, s.counter), fmt.Sprintf("refresh-%d-%d", userID, s.counter), nil
}

func (s *fakeJWTService) GenerateActivationToken(email string) (string, error) {
	s.counter++
	return fmt.Sprintf("activation-%s-%d", email, s.counter), nil
}

func (s *fakeJWTService) ValidateToken(tokenString string) (*service.JwtCustomClaim, error) {
	return nil, apperrors.ErrInvalidToken
}

func (s *fakeJWTService) ValidateActivationToken(tokenString string) (*service.ActivationClaim, error) {
	return &service.ActivationClaim{}, nil
}

func (s *fakeJWTService) GetAccessTokenTTL() time.Duration  { return time.Hour }
func (s *fakeJWTService) GetRefreshTokenTTL() time.Duration { return time.Hour }

type fakePasswordService struct{}

func (s *fakePasswordService) Hash(plain string) (string, error) { return "hash:" + plain, nil }
func (s *fakePasswordService) Compare(plain, hash string) bool   { return "hash:"+plain == hash }

func newUserService(userRepo *fakeUserRepo, tokenRepo *fakeTokenRepo) UserServiceInterface {
	return NewUserService(userRepo, tokenRepo, &fakeJWTService{}, &fakePasswordService{}, zap.NewNop())
}

func TestCreateUser_AdminCreatesInactiveManager(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newUserService(userRepo, newFakeTokenRepo())

	created, err := svc.CreateUser(ctxForUser(1, constants.RoleAdmin, true), dto.CreateUserDTO{
		Email:     "Anna@GMail.com",
		FirstName: "anna",
		LastName:  "ivanova",
	})
	require.NoError(t, err)

	assert.Equal(t, "anna@gmail.com", created.User.Email)
	assert.Equal(t, "Anna", created.User.FirstName)
	assert.Equal(t, "Ivanova", created.User.LastName)
	assert.Equal(t, constants.RoleManager, created.User.Role)
	assert.False(t, created.User.IsActive)
	assert.NotEmpty(t, created.ActivationToken)
}

func TestCreateUser_ManagerForbidden(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), newFakeTokenRepo())

	_, err := svc.CreateUser(ctxForUser(2, constants.RoleManager, true), dto.CreateUserDTO{
		Email:     "x@y.com",
		FirstName: "a",
		LastName:  "b",
	})
	require.Error(t, err)
}

func TestActivateUser_SetsPasswordAndActivates(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	svc := newUserService(userRepo, tokenRepo)

	created, err := svc.CreateUser(ctxForUser(1, constants.RoleAdmin, true), dto.CreateUserDTO{
		Email:     "anna@gmail.com",
		FirstName: "anna",
		LastName:  "ivanova",
	})
	require.NoError(t, err)

	err = svc.ActivateUser(context.Background(), created.ActivationToken, dto.ActivateUserDTO{Password: "secret"})
	require.NoError(t, err)

	user := userRepo.users[created.User.ID]
	assert.True(t, user.IsActive)
	assert.Equal(t, "hash:secret", user.Password.String)
}

func TestActivateUser_TokenIsSingleUse(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	svc := newUserService(userRepo, tokenRepo)

	created, err := svc.CreateUser(ctxForUser(1, constants.RoleAdmin, true), dto.CreateUserDTO{
		Email:     "anna@gmail.com",
		FirstName: "anna",
		LastName:  "ivanova",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ActivateUser(context.Background(), created.ActivationToken, dto.ActivateUserDTO{Password: "one"}))

	err = svc.ActivateUser(context.Background(), created.ActivationToken, dto.ActivateUserDTO{Password: "two"})
	require.Error(t, err)
}

func TestSetUserActive_BanAndUnban(t *testing.T) {
	userRepo := newFakeUserRepo(&entities.User{ID: 5, Role: constants.RoleManager, IsActive: true})
	svc := newUserService(userRepo, newFakeTokenRepo())

	ctx := ctxForUser(1, constants.RoleAdmin, true)

	banned, err := svc.SetUserActive(ctx, 5, false)
	require.NoError(t, err)
	assert.False(t, banned.IsActive)

	unbanned, err := svc.SetUserActive(ctx, 5, true)
	require.NoError(t, err)
	assert.True(t, unbanned.IsActive)
}

func TestSetUserActive_AdminCannotBeBanned(t *testing.T) {
	userRepo := newFakeUserRepo(&entities.User{ID: 1, Role: constants.RoleAdmin, IsActive: true})
	svc := newUserService(userRepo, newFakeTokenRepo())

	_, err := svc.SetUserActive(ctxForUser(1, constants.RoleAdmin, true), 1, false)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestReissueActivationToken_ReplacesOldToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	svc := newUserService(userRepo, tokenRepo)

	created, err := svc.CreateUser(ctxForUser(1, constants.RoleAdmin, true), dto.CreateUserDTO{
		Email:     "anna@gmail.com",
		FirstName: "anna",
		LastName:  "ivanova",
	})
	require.NoError(t, err)

	reissued, err := svc.ReissueActivationToken(ctxForUser(1, constants.RoleAdmin, true), created.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, created.ActivationToken, reissued)

	// Старый токен больше не работает.
	err = svc.ActivateUser(context.Background(), created.ActivationToken, dto.ActivateUserDTO{Password: "x"})
	require.Error(t, err)

	require.NoError(t, svc.ActivateUser(context.Background(), reissued, dto.ActivateUserDTO{Password: "x"}))
}

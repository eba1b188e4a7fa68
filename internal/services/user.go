package services

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"school-crm/internal/authz"
	"school-crm/internal/dto"
	"school-crm/internal/entities"
	"school-crm/internal/repositories"
	"school-crm/pkg/constants"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/service"
	"school-crm/pkg/utils"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.CreatedUserDTO, error)
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	SetUserActive(ctx context.Context, id uint64, isActive bool) (*dto.UserDTO, error)
	ReissueActivationToken(ctx context.Context, id uint64) (string, error)
	ActivateUser(ctx context.Context, activationToken string, payload dto.ActivateUserDTO) error
}

type UserService struct {
	userRepo        repositories.UserRepositoryInterface
	tokenRepo       repositories.TokenRepositoryInterface
	jwtService      service.JWTService
	passwordService service.PasswordService
	logger          *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.TokenRepositoryInterface,
	jwtService service.JWTService,
	passwordService service.PasswordService,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		jwtService:      jwtService,
		passwordService: passwordService,
		logger:          logger,
	}
}

// CreateUser заводит менеджера без пароля и в неактивном состоянии.
// Пароль сотрудник задаёт сам по токену активации.
func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.CreatedUserDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.UsersManage, authz.OwnershipNone); err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:     utils.NormalizeEmail(payload.Email),
		FirstName: utils.CapitalizeFirstLetter(payload.FirstName),
		LastName:  utils.CapitalizeFirstLetter(payload.LastName),
		Role:      constants.RoleManager,
		IsActive:  false,
	}
	if payload.Phone != "" {
		user.Phone = null.StringFrom(payload.Phone)
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	activationToken, err := s.issueActivationToken(ctx, created)
	if err != nil {
		return nil, err
	}

	return &dto.CreatedUserDTO{User: *toUserDTO(created), ActivationToken: activationToken}, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.UsersManage, authz.OwnershipNone); err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return toUserDTOs(users), nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.UsersManage, authz.OwnershipNone); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return toUserDTO(user), nil
}

// SetUserActive — ban/unban менеджера. Админа заблокировать нельзя.
func (s *UserService) SetUserActive(ctx context.Context, id uint64, isActive bool) (*dto.UserDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.UsersManage, authz.OwnershipNone); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	if user.Role == constants.RoleAdmin {
		return nil, apperrors.NewBadRequestError("Admin cannot be banned")
	}

	if err := s.userRepo.SetActive(ctx, id, isActive); err != nil {
		return nil, err
	}
	user.IsActive = isActive
	return toUserDTO(user), nil
}

// ReissueActivationToken выдаёт новый токен активации уже заведённому
// менеджеру (старый при этом вытесняется).
func (s *UserService) ReissueActivationToken(ctx context.Context, id uint64) (string, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return "", err
	}
	if err := authz.Require(actor, authz.UsersManage, authz.OwnershipNone); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.NewNotFoundError("User not found")
		}
		return "", err
	}

	return s.issueActivationToken(ctx, user)
}

// ActivateUser — менеджер задаёт пароль по токену активации. Токен
// одноразовый: после успешной активации запись вытесняется пустой.
func (s *UserService) ActivateUser(ctx context.Context, activationToken string, payload dto.ActivateUserDTO) error {
	if _, err := s.jwtService.ValidateActivationToken(activationToken); err != nil {
		return err
	}

	stored, err := s.tokenRepo.FindByActivationToken(ctx, activationToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return err
	}

	hash, err := s.passwordService.Hash(payload.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetPasswordAndActivate(ctx, stored.UserID, hash); err != nil {
		return err
	}

	if err := s.tokenRepo.ReplaceForUser(ctx, &entities.Token{UserID: stored.UserID}); err != nil {
		s.logger.Warn("Не удалось погасить токен активации",
			zap.Uint64("userId", stored.UserID), zap.Error(err))
	}
	return nil
}

func (s *UserService) issueActivationToken(ctx context.Context, user *entities.User) (string, error) {
	activationToken, err := s.jwtService.GenerateActivationToken(user.Email)
	if err != nil {
		s.logger.Error("Ошибка генерации токена активации",
			zap.Uint64("userId", user.ID), zap.Error(err))
		return "", err
	}

	token := &entities.Token{
		ActivationToken: null.StringFrom(activationToken),
		UserID:          user.ID,
	}
	if err := s.tokenRepo.ReplaceForUser(ctx, token); err != nil {
		return "", err
	}
	return activationToken, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"school-crm/internal/dto"
	"school-crm/internal/entities"
	"school-crm/internal/repositories"
	"school-crm/pkg/config"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/service"
	"school-crm/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	tokenRepo       repositories.TokenRepositoryInterface
	cacheRepo       repositories.CacheRepositoryInterface
	jwtService      service.JWTService
	passwordService service.PasswordService
	authConfig      config.AuthConfig
	logger          *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.TokenRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	passwordService service.PasswordService,
	authConfig config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		cacheRepo:       cacheRepo,
		jwtService:      jwtService,
		passwordService: passwordService,
		authConfig:      authConfig,
		logger:          logger,
	}
}

func loginAttemptsKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

// Login проверяет учётные данные и выдаёт новую пару токенов. Счётчик
// неудачных попыток живёт в Redis и блокирует вход на время LockoutDuration.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	email := utils.NormalizeEmail(payload.Email)

	if err := s.checkLoginAttempts(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.registerFailedAttempt(ctx, email)
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, err
	}

	if !user.Password.Valid || !s.passwordService.Compare(payload.Password, user.Password.String) {
		s.registerFailedAttempt(ctx, email)
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	if !user.CanLogin() {
		return nil, apperrors.NewForbiddenError(
			"You have been blocked by the admin. Contact him, and don't forget to bring him a chocolate bar")
	}

	if err := s.cacheRepo.Del(ctx, loginAttemptsKey(email)); err != nil {
		s.logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Не удалось обновить время последнего входа",
			zap.Uint64("userId", user.ID), zap.Error(err))
	}

	return pair, nil
}

// Refresh обменивает действительный refresh-токен на новую пару.
// Старая пара при этом инвалидируется (delete-then-insert в tokens).
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	stored, err := s.tokenRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if stored.RefreshToken != payload.RefreshToken {
		// Токен формально валиден, но уже вытеснен более новой парой.
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, apperrors.NewForbiddenError(
			"You have been blocked by the admin. Contact him, and don't forget to bring him a chocolate bar")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*dto.TokenPairDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role, user.IsActive)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов", zap.Uint64("userId", user.ID), zap.Error(err))
		return nil, err
	}

	token := &entities.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
	}
	if err := s.tokenRepo.ReplaceForUser(ctx, token); err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) checkLoginAttempts(ctx context.Context, email string) error {
	raw, err := s.cacheRepo.Get(ctx, loginAttemptsKey(email))
	if err != nil {
		// Недоступный Redis не должен блокировать вход.
		return nil
	}
	attempts, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	if attempts >= s.authConfig.MaxLoginAttempts {
		return apperrors.NewHttpError(http.StatusTooManyRequests,
			"Too many failed login attempts. Try again later", nil)
	}
	return nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, email string) {
	key := loginAttemptsKey(email)
	count, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return
	}
	if count == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.authConfig.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось выставить TTL счётчика попыток входа", zap.Error(err))
		}
	}
}

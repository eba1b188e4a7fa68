package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"school-crm/pkg/config"
	apperrors "school-crm/pkg/errors"
)

// JwtCustomClaim — полезная нагрузка access/refresh токенов. Ядро нигде не
// парсит токен само: middleware кладёт расшифрованные claims в контекст.
type JwtCustomClaim struct {
	UserID         uint64 `json:"userId"`
	Role           string `json:"role"`
	IsActive       bool   `json:"isActive"`
	IsRefreshToken bool   `json:"isRefresh"`
	jwt.RegisteredClaims
}

// ActivationClaim — полезная нагрузка токена активации аккаунта.
type ActivationClaim struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uint64, role string, isActive bool) (string, string, error)
	GenerateActivationToken(email string) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	ValidateActivationToken(tokenString string) (*ActivationClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewJWTService получает секрет и TTL только через конфиг — никаких
// глобальных констант.
func NewJWTService(cfg config.JWTConfig, logger *zap.Logger) JWTService {
	return &jwtService{cfg: cfg, logger: logger}
}

func (s *jwtService) GenerateTokens(userID uint64, role string, isActive bool) (string, string, error) {
	now := time.Now()

	accessTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		IsActive:       isActive,
		IsRefreshToken: false,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}

	refreshTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Role:           role,
		IsActive:       isActive,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenTTL)),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS512, accessTokenClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshTokenClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

func (s *jwtService) GenerateActivationToken(email string) (string, error) {
	claims := &ActivationClaim{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			// Уникальный ID: повторная выдача для того же email даёт другой токен.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.ActivationTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *jwtService) ValidateActivationToken(tokenString string) (*ActivationClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActivationClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.cfg.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*ActivationClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.cfg.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		s.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.cfg.AccessTokenTTL
}

func (s *jwtService) GetRefreshTokenTTL() time.Duration {
	return s.cfg.RefreshTokenTTL
}

package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-crm/internal/repositories"
	"school-crm/internal/services"
	"school-crm/pkg/config"
	"school-crm/pkg/middleware"
	"school-crm/pkg/service"
)

// InitRouter собирает весь граф зависимостей и вешает маршруты.
// Публичные: вход, обновление токенов и активация аккаунта; всё
// остальное за auth-middleware.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	api := e.Group("/api")

	jwtSvc := service.NewJWTService(cfg.JWT, logger)
	passwordSvc := service.NewPasswordService()
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	secure := api.Group("", authMW.Auth)

	// Репозитории
	userRepo := repositories.NewUserRepository(dbConn, logger)
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	groupRepo := repositories.NewGroupRepository(dbConn)
	commentRepo := repositories.NewCommentRepository(dbConn)
	tokenRepo := repositories.NewTokenRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Сервисы
	authService := services.NewAuthService(userRepo, tokenRepo, cacheRepo, jwtSvc, passwordSvc, cfg.Auth, logger)
	orderService := services.NewOrderService(orderRepo, groupRepo, userRepo, logger)
	commentService := services.NewCommentService(commentRepo, orderRepo, userRepo, logger)
	userService := services.NewUserService(userRepo, tokenRepo, jwtSvc, passwordSvc, logger)
	groupService := services.NewGroupService(groupRepo, logger)

	runAuthRouter(api, authService, logger)
	runOrderRouter(secure, orderService, commentService, logger)
	runUserRouter(api, secure, userService, logger)
	runGroupRouter(secure, groupService, logger)
}

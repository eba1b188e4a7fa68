package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-crm/internal/controllers"
	"school-crm/internal/services"
)

func runUserRouter(api, secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger) {
	userCtrl := controllers.NewUserController(userService, logger)
	{
		secureGroup.GET("/users", userCtrl.GetUsers)
		secureGroup.POST("/users", userCtrl.CreateUser)
		secureGroup.GET("/users/:id", userCtrl.FindUser)
		secureGroup.PATCH("/users/:id/ban", userCtrl.BanUser)
		secureGroup.PATCH("/users/:id/unban", userCtrl.UnbanUser)
		secureGroup.POST("/users/:id/re-token", userCtrl.ReissueActivationToken)

		// Активация по токену происходит до первого входа, маршрут публичный.
		api.PUT("/users/activate/:token", userCtrl.ActivateUser)
	}
}

package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-crm/internal/controllers"
	"school-crm/internal/services"
)

func runGroupRouter(secureGroup *echo.Group, groupService services.GroupServiceInterface, logger *zap.Logger) {
	groupCtrl := controllers.NewGroupController(groupService, logger)
	{
		secureGroup.GET("/groups", groupCtrl.GetGroups)
		secureGroup.POST("/groups", groupCtrl.CreateGroup)
	}
}

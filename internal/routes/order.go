package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-crm/internal/controllers"
	"school-crm/internal/services"
)

func runOrderRouter(
	secureGroup *echo.Group,
	orderService services.OrderServiceInterface,
	commentService services.CommentServiceInterface,
	logger *zap.Logger,
) {
	orderCtrl := controllers.NewOrderController(orderService, logger)
	commentCtrl := controllers.NewCommentController(commentService, logger)
	{
		secureGroup.GET("/orders", orderCtrl.GetOrders)
		secureGroup.GET("/orders/excel", orderCtrl.ExportOrdersToExcel)
		secureGroup.GET("/orders/statistics", orderCtrl.GetOrderStatistics)
		secureGroup.GET("/orders/statistics/user/:userId", orderCtrl.GetOrderStatisticsByUser)
		secureGroup.GET("/orders/user/:userId", orderCtrl.GetOrdersByManager)
		secureGroup.PATCH("/orders/:id", orderCtrl.UpdateOrder)
		secureGroup.POST("/orders/:id/comments", commentCtrl.CreateComment)
		secureGroup.GET("/orders/:id/comments", commentCtrl.GetOrderComments)
	}
}

package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-crm/internal/dto"
	"school-crm/internal/services"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	params, err := utils.ParseListParams(ctx.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	orders, total, err := c.orderService.GetOrders(reqCtx, params)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessListResponse(ctx, orders, "Заявки успешно получены", total, params.Page, params.Limit)
}

func (c *OrderController) GetOrdersByManager(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	managerID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid user id"))
	}

	orders, err := c.orderService.GetOrdersByManager(reqCtx, managerID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, orders, "Заявки менеджера успешно получены", http.StatusOK)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid order id"))
	}

	var payload dto.UpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.UpdateOrder(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, order, "Заявка успешно обновлена", http.StatusOK)
}

func (c *OrderController) GetOrderStatistics(ctx echo.Context) error {
	stats, err := c.orderService.GetOrderStatistics(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика успешно сформирована", http.StatusOK)
}

func (c *OrderController) GetOrderStatisticsByUser(ctx echo.Context) error {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid user id"))
	}

	stats, err := c.orderService.GetOrderStatisticsByUser(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика успешно сформирована", http.StatusOK)
}

var excelHeaders = []string{
	"ID", "Name", "Surname", "Email", "Phone", "Age", "Course", "Format", "Type",
	"Sum", "Already paid", "Status", "Group", "Manager", "Created at",
}

// ExportOrdersToExcel выгружает все заявки под текущим фильтром одним
// xlsx-файлом, без пагинации.
func (c *OrderController) ExportOrdersToExcel(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	params, err := utils.ParseListParams(ctx.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	// Выгружаем всё одним листом.
	params.Page = 1
	params.Limit = 100000
	params.Offset = 0

	orders, _, err := c.orderService.GetOrders(reqCtx, params)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &excelHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "O1", style)

	for i, order := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := orderToExcelRow(order)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "E", 20)
	f.SetColWidth(sheet, "G", "I", 12)
	f.SetColWidth(sheet, "M", "O", 22)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func orderToExcelRow(order dto.OrderDTO) []interface{} {
	var group, manager string
	if order.Group != nil {
		group = order.Group.Name
	}
	if order.Manager != nil {
		manager = fmt.Sprintf("%s %s", order.Manager.FirstName, order.Manager.LastName)
	}

	return []interface{}{
		order.ID, order.Name.String, order.Surname.String, order.Email.String,
		order.Phone.String, order.Age.Int, order.Course.String, order.CourseFormat.String,
		order.CourseType.String, order.Sum.Int, order.AlreadyPaid.Int, order.Status.String,
		group, manager, order.CreatedAt,
	}
}

package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-crm/internal/dto"
	"school-crm/internal/services"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/utils"
)

type GroupController struct {
	groupService services.GroupServiceInterface
	logger       *zap.Logger
}

func NewGroupController(groupService services.GroupServiceInterface, logger *zap.Logger) *GroupController {
	return &GroupController{groupService: groupService, logger: logger}
}

func (c *GroupController) CreateGroup(ctx echo.Context) error {
	var payload dto.CreateGroupDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	group, err := c.groupService.CreateGroup(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, group, "Группа успешно создана", http.StatusCreated)
}

func (c *GroupController) GetGroups(ctx echo.Context) error {
	groups, err := c.groupService.GetGroups(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, groups, "Группы успешно получены", http.StatusOK)
}

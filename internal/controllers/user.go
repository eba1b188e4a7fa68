package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-crm/internal/dto"
	"school-crm/internal/services"
	apperrors "school-crm/pkg/errors"
	"school-crm/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	created, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, created, "Менеджер успешно создан", http.StatusCreated)
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	users, err := c.userService.GetUsers(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, users, "Пользователи успешно получены", http.StatusOK)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid user id"))
	}

	user, err := c.userService.FindUser(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь успешно найден", http.StatusOK)
}

func (c *UserController) BanUser(ctx echo.Context) error {
	return c.setActive(ctx, false, "Пользователь заблокирован")
}

func (c *UserController) UnbanUser(ctx echo.Context) error {
	return c.setActive(ctx, true, "Пользователь разблокирован")
}

func (c *UserController) setActive(ctx echo.Context, isActive bool, message string) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid user id"))
	}

	user, err := c.userService.SetUserActive(ctx.Request().Context(), id, isActive)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, message, http.StatusOK)
}

func (c *UserController) ReissueActivationToken(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid user id"))
	}

	token, err := c.userService.ReissueActivationToken(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, map[string]string{"activationToken": token},
		"Токен активации успешно выдан", http.StatusOK)
}

func (c *UserController) ActivateUser(ctx echo.Context) error {
	activationToken := ctx.Param("token")

	var payload dto.ActivateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.userService.ActivateUser(ctx.Request().Context(), activationToken, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Аккаунт успешно активирован", http.StatusOK)
}

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

type CommentController struct {
	commentService services.CommentServiceInterface
	logger         *zap.Logger
}

func NewCommentController(commentService services.CommentServiceInterface, logger *zap.Logger) *CommentController {
	return &CommentController{commentService: commentService, logger: logger}
}

func (c *CommentController) CreateComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid order id"))
	}

	var payload dto.CreateCommentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	comment, err := c.commentService.CreateComment(reqCtx, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, comment, "Комментарий успешно создан", http.StatusCreated)
}

func (c *CommentController) GetOrderComments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid order id"))
	}

	comments, err := c.commentService.GetOrderComments(reqCtx, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, comments, "Комментарии успешно получены", http.StatusOK)
}

package controller

import (
	"go-activity-planner/core/constants"
	"go-activity-planner/core/controller"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/utils"
	"go-activity-planner/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarController handles calendar connection HTTP requests
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarService
}

func NewCalendarController(svc service.CalendarService) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

func (c *CalendarController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// GetConnections handles GET /calendar/connections
// @Summary Danh sách kết nối lịch
// @Description Lấy danh sách kết nối lịch của người dùng
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.CalendarConnectionResponse
// @Failure 401 {object} errors.AppError
// @Router /private/calendar/connections [get]
func (c *CalendarController) GetConnections(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, svcErr := c.CalendarService.GetConnections(ctx.Request().Context(), userID)
	if svcErr != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to get connections")
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Disconnect handles DELETE /calendar/connections/:provider
// @Summary Ngắt kết nối lịch
// @Description Ngắt kết nối một nhà cung cấp lịch
// @Tags Calendar
// @Security BearerAuth
// @Param provider path string true "Provider (google)"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.AppError
// @Router /private/calendar/connections/{provider} [delete]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	provider := ctx.Param("provider")
	if provider == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing provider")
	}

	if err := c.CalendarService.DisconnectCalendar(ctx.Request().Context(), userID, provider); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to disconnect calendar")
	}

	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}

package controller

import (
	"time"

	"go-activity-planner/core/constants"
	"go-activity-planner/core/controller"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/utils"
	"go-activity-planner/modules/availability/dto"
	"go-activity-planner/modules/availability/entity"
	"go-activity-planner/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

func (c *AvailabilityController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// GetReport handles POST /availability/report
// @Summary Báo cáo lịch rảnh
// @Description Tính báo cáo lịch rảnh/bận của người dùng trong khoảng thời gian
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ReportRequest true "Khoảng thời gian"
// @Success 200 {object} dto.AvailabilityResult
// @Failure 400 {object} errors.AppError
// @Router /private/availability/report [post]
func (c *AvailabilityController) GetReport(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ReportRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date format, expected RFC3339")
	}

	// Caller-supplied busy data takes precedence over calendar fetch
	if len(req.BusyEvents) > 0 {
		busy := make([]entity.BusyEvent, 0, len(req.BusyEvents))
		for _, b := range req.BusyEvents {
			bStart, err1 := time.Parse(time.RFC3339, b.Start)
			bEnd, err2 := time.Parse(time.RFC3339, b.End)
			if err1 != nil || err2 != nil {
				return c.BadRequest(errors.ErrInvalidInput, "Invalid busy event timestamps")
			}
			busy = append(busy, entity.BusyEvent{
				Interval: entity.Interval{Start: bStart, End: bEnd},
				Title:    b.Title,
			})
		}

		result, appErr := c.AvailabilityService.BuildReportFromBusy(start, end, busy)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, result, "Success")
	}

	result, appErr := c.AvailabilityService.GetReport(ctx.Request().Context(), userID, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// WatchReport handles GET /availability/report/live
// @Summary Báo cáo lịch rảnh tự làm mới
// @Description Trả về báo cáo lịch rảnh được làm mới định kỳ ở nền theo chu kỳ cấu hình
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param start query string true "Thời gian bắt đầu (RFC3339)"
// @Param end query string true "Thời gian kết thúc (RFC3339)"
// @Success 200 {object} dto.AvailabilityResult
// @Failure 400 {object} errors.AppError
// @Router /private/availability/report/live [get]
func (c *AvailabilityController) WatchReport(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	start, end, err := parseRange(ctx.QueryParam("start"), ctx.QueryParam("end"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date format, expected RFC3339")
	}

	result, appErr := c.AvailabilityService.WatchReport(ctx.Request().Context(), userID, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetGroupFreeSlots handles POST /availability/group-free-slots
// @Summary Khung giờ rảnh chung
// @Description Tính giao của khung giờ rảnh giữa nhiều người tham gia
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GroupFreeSlotsRequest true "Người tham gia và khoảng thời gian"
// @Success 200 {object} dto.GroupFreeSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/group-free-slots [post]
func (c *AvailabilityController) GetGroupFreeSlots(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.GroupFreeSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date format, expected RFC3339")
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, idStr := range req.UserIDs {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			continue
		}
		userIDs = append(userIDs, id)
	}

	if len(userIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "No valid user IDs")
	}

	result, appErr := c.AvailabilityService.GetGroupFreeSlots(ctx.Request().Context(), userIDs, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CheckSlot handles POST /availability/check-slot
// @Summary Kiểm tra khung giờ
// @Description Kiểm tra một khung giờ cụ thể có rảnh không và liệt kê sự kiện xung đột
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckSlotRequest true "Khung giờ cần kiểm tra"
// @Success 200 {object} dto.CheckSlotResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/check-slot [post]
func (c *AvailabilityController) CheckSlot(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CheckSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	candidateStart, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid candidate start, expected RFC3339")
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date format, expected RFC3339")
	}

	candidate := entity.Candidate{Start: candidateStart, DurationHours: req.DurationHours}

	result, appErr := c.AvailabilityService.CheckSlot(ctx.Request().Context(), userID, candidate, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

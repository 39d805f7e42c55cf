package controller

import (
	"time"

	"go-activity-planner/core/constants"
	"go-activity-planner/core/controller"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/params"
	"go-activity-planner/core/utils"
	"go-activity-planner/modules/activity/dto"
	"go-activity-planner/modules/activity/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ActivityController handles activity HTTP requests
type ActivityController struct {
	controller.BaseController
	ActivityService service.ActivityServiceInterface
}

func NewActivityController(svc service.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		BaseController:  controller.NewBaseController(),
		ActivityService: svc,
	}
}

func (c *ActivityController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateActivity handles POST /activities
// @Summary Tạo hoạt động
// @Description Tạo hoạt động nhóm mới, tự động tính hạn phản hồi
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateActivityRequest true "Thông tin hoạt động"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} errors.AppError
// @Router /private/activities [post]
func (c *ActivityController) CreateActivity(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateActivityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	targetDate, err := parseOptionalTime(req.TargetDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid target_date, expected RFC3339")
	}

	participants := make([]uuid.UUID, 0, len(req.Participants))
	for _, idStr := range req.Participants {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID: "+idStr)
		}
		participants = append(participants, id)
	}

	activity, appErr := c.ActivityService.CreateActivity(ctx.Request().Context(), userID, service.CreateActivityInput{
		Title:           req.Title,
		Description:     req.Description,
		ActivityType:    req.ActivityType,
		TargetDate:      targetDate,
		DurationMinutes: req.DurationMinutes,
		Participants:    participants,
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	_, participantsList, getErr := c.ActivityService.GetActivity(ctx.Request().Context(), activity.ID)
	if getErr != nil {
		return c.ErrorResponse(ctx, getErr)
	}

	return c.SuccessResponse(ctx, dto.ToActivityResponse(activity, participantsList), "Success")
}

// GetActivity handles GET /activities/:id
// @Summary Chi tiết hoạt động
// @Description Lấy chi tiết một hoạt động kèm danh sách người tham gia
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.ActivityResponse
// @Failure 404 {object} errors.AppError
// @Router /private/activities/{id} [get]
func (c *ActivityController) GetActivity(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	activity, participants, appErr := c.ActivityService.GetActivity(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.ToActivityResponse(activity, participants), "Success")
}

// GetActivityBySlug handles GET /activities/slug/:slug
// @Summary Chi tiết hoạt động theo slug
// @Description Lấy chi tiết hoạt động bằng slug chia sẻ
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Activity slug"
// @Success 200 {object} dto.ActivityResponse
// @Failure 404 {object} errors.AppError
// @Router /private/activities/slug/{slug} [get]
func (c *ActivityController) GetActivityBySlug(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	activity, participants, appErr := c.ActivityService.GetActivityBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.ToActivityResponse(activity, participants), "Success")
}

// ListActivities handles GET /activities
// @Summary Danh sách hoạt động
// @Description Danh sách hoạt động của người dùng (tổ chức hoặc tham gia), có phân trang
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param page_number query int false "Trang"
// @Param page_size query int false "Kích thước trang"
// @Success 200 {object} entity.Pagination[entity.Activity]
// @Router /private/activities [get]
func (c *ActivityController) ListActivities(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	queryParams := params.FromContext(ctx)

	result, appErr := c.ActivityService.ListActivities(ctx.Request().Context(), userID, queryParams.PageNumber, queryParams.PageSize)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateActivity handles PUT /activities/:id
// @Summary Cập nhật hoạt động
// @Description Cập nhật thông tin hoạt động, tự tính lại hạn phản hồi khi đổi ngày
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.UpdateActivityRequest true "Thông tin cập nhật"
// @Success 200 {object} dto.ActivityResponse
// @Failure 403 {object} errors.AppError
// @Router /private/activities/{id} [put]
func (c *ActivityController) UpdateActivity(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	var req dto.UpdateActivityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	targetDate, err := parseOptionalTime(req.TargetDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid target_date, expected RFC3339")
	}

	activity, appErr := c.ActivityService.UpdateActivity(ctx.Request().Context(), id, userID, service.UpdateActivityInput{
		Title:           req.Title,
		Description:     req.Description,
		ActivityType:    req.ActivityType,
		TargetDate:      targetDate,
		DurationMinutes: req.DurationMinutes,
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	_, participants, getErr := c.ActivityService.GetActivity(ctx.Request().Context(), id)
	if getErr != nil {
		return c.ErrorResponse(ctx, getErr)
	}

	return c.SuccessResponse(ctx, dto.ToActivityResponse(activity, participants), "Success")
}

// GetDeadlineStatus handles GET /activities/:id/deadline
// @Summary Trạng thái hạn phản hồi
// @Description Lấy hạn phản hồi hiện tại kèm chuỗi đếm ngược hiển thị
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.DeadlineStatusResponse
// @Failure 404 {object} errors.AppError
// @Router /private/activities/{id}/deadline [get]
func (c *ActivityController) GetDeadlineStatus(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	status, appErr := c.ActivityService.GetDeadlineStatus(ctx.Request().Context(), id, time.Now())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.DeadlineStatusResponse{
		Deadline:      status.Deadline,
		SourceDate:    status.SourceDate,
		Overridden:    status.Overridden,
		Passed:        status.Passed,
		RemainingText: status.RemainingText,
	}, "Success")
}

// OverrideDeadline handles PUT /activities/:id/deadline
// @Summary Đổi hạn phản hồi
// @Description Người tổ chức đặt hạn phản hồi thủ công, phải nằm trong tương lai
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.OverrideDeadlineRequest true "Hạn phản hồi mới"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} errors.AppError
// @Router /private/activities/{id}/deadline [put]
func (c *ActivityController) OverrideDeadline(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	var req dto.OverrideDeadlineRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid deadline, expected RFC3339")
	}

	activity, appErr := c.ActivityService.OverrideDeadline(ctx.Request().Context(), id, userID, deadline)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	_, participants, getErr := c.ActivityService.GetActivity(ctx.Request().Context(), id)
	if getErr != nil {
		return c.ErrorResponse(ctx, getErr)
	}

	return c.SuccessResponse(ctx, dto.ToActivityResponse(activity, participants), "Success")
}

// FinalizeActivity handles POST /activities/:id/finalize
// @Summary Chốt hoạt động
// @Description Chốt thời gian hoạt động khi hạn phản hồi đã qua hoặc mọi người đã trả lời
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.FinalizeRequest true "Thời gian chốt"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} errors.AppError
// @Router /private/activities/{id}/finalize [post]
func (c *ActivityController) FinalizeActivity(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	var req dto.FinalizeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	start, err := parseOptionalTime(req.StartTime)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start_time, expected RFC3339")
	}
	end, err := parseOptionalTime(req.EndTime)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end_time, expected RFC3339")
	}

	activity, appErr := c.ActivityService.FinalizeActivity(ctx.Request().Context(), id, userID, start, end)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	_, participants, getErr := c.ActivityService.GetActivity(ctx.Request().Context(), id)
	if getErr != nil {
		return c.ErrorResponse(ctx, getErr)
	}

	return c.SuccessResponse(ctx, dto.ToActivityResponse(activity, participants), "Success")
}

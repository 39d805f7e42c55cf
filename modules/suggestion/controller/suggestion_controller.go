package controller

import (
	"time"

	"go-activity-planner/core/constants"
	"go-activity-planner/core/controller"
	"go-activity-planner/core/errors"
	"go-activity-planner/modules/suggestion/dto"
	"go-activity-planner/modules/suggestion/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SuggestionController handles suggestion HTTP requests
type SuggestionController struct {
	controller.BaseController
	SuggestionService service.SuggestionServiceInterface
}

func NewSuggestionController(svc service.SuggestionServiceInterface) *SuggestionController {
	return &SuggestionController{
		BaseController:    controller.NewBaseController(),
		SuggestionService: svc,
	}
}

// GetSuggestions handles POST /suggestions/activity/:id
// @Summary Gợi ý lịch hẹn
// @Description Xếp hạng các khung giờ gợi ý cho hoạt động dựa trên lịch rảnh chung, thời tiết và sở thích
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.SuggestionsRequest true "Khoảng thời gian và dự báo thời tiết (tuỳ chọn)"
// @Success 200 {object} dto.SuggestionsResponse
// @Failure 400 {object} errors.AppError
// @Router /private/suggestions/activity/{id} [post]
func (c *SuggestionController) GetSuggestions(ctx echo.Context) error {
	if ctx.Get(constants.ContextTokenData) == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	activityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	var req dto.SuggestionsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	var rangeStart, rangeEnd time.Time
	if req.StartDate != "" {
		rangeStart, err = time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid start_date, expected RFC3339")
		}
	}
	if req.EndDate != "" {
		rangeEnd, err = time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid end_date, expected RFC3339")
		}
	}

	result, appErr := c.SuggestionService.GetSuggestions(ctx.Request().Context(), activityID, rangeStart, rangeEnd, req.Forecasts)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

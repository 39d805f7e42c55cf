package controller

import (
	"go-activity-planner/core/constants"
	"go-activity-planner/core/controller"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/utils"
	"go-activity-planner/modules/invitation/dto"
	"go-activity-planner/modules/invitation/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InvitationController struct {
	controller.BaseController
	service *service.InvitationService
}

func NewInvitationController(service *service.InvitationService) *InvitationController {
	return &InvitationController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

func (c *InvitationController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Token data not found in context", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data format", nil)
	}

	return claims.UserID, nil
}

// CreateInvitations handles POST /invitations
// @Summary Mời tham gia hoạt động
// @Description Người tổ chức gửi lời mời tham gia hoạt động cho nhiều người
// @Tags Invitation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateInvitationsRequest true "Hoạt động và danh sách người được mời"
// @Success 200
// @Failure 403 {object} errors.AppError
// @Router /private/invitations [post]
func (c *InvitationController) CreateInvitations(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateInvitationsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	activityID, err := uuid.Parse(req.ActivityID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	inviteeIDs := make([]uuid.UUID, 0, len(req.InviteeIDs))
	for _, idStr := range req.InviteeIDs {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid invitee ID: "+idStr)
		}
		inviteeIDs = append(inviteeIDs, id)
	}
	if len(inviteeIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "No invitees supplied")
	}

	if appErr := c.service.CreateInvitations(ctx.Request().Context(), userID, activityID, inviteeIDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Invitations created")
}

// GetPendingInvitations handles GET /invitations/pending
// @Summary Lời mời đang chờ
// @Description Danh sách lời mời chưa phản hồi của người dùng
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PendingInvitationsResponse
// @Router /private/invitations/pending [get]
func (c *InvitationController) GetPendingInvitations(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	response, appErr := c.service.GetPendingInvitations(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, response, "Pending invitations retrieved")
}

// AcceptInvitation handles POST /invitations/:id/accept
// @Summary Chấp nhận lời mời
// @Description Chấp nhận lời mời tham gia; bị từ chối nếu hạn phản hồi đã qua
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} dto.RespondResponse
// @Failure 403 {object} errors.AppError
// @Router /private/invitations/{id}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid invitation ID")
	}

	resp, appErr := c.service.Respond(ctx.Request().Context(), id, userID, true)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, resp, "Invitation accepted")
}

// DeclineInvitation handles POST /invitations/:id/decline
// @Summary Từ chối lời mời
// @Description Từ chối lời mời tham gia; bị từ chối nếu hạn phản hồi đã qua
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} dto.RespondResponse
// @Failure 403 {object} errors.AppError
// @Router /private/invitations/{id}/decline [post]
func (c *InvitationController) DeclineInvitation(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid invitation ID")
	}

	resp, appErr := c.service.Respond(ctx.Request().Context(), id, userID, false)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, resp, "Invitation declined")
}

// CountPending handles GET /invitations/pending/count
// @Summary Đếm lời mời đang chờ
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Success 200
// @Router /private/invitations/pending/count [get]
func (c *InvitationController) CountPending(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	count, appErr := c.service.CountPending(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "Pending count retrieved")
}

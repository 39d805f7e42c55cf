package service

import (
	"context"
	"fmt"
	"time"

	"go-activity-planner/core/errors"
	"go-activity-planner/core/logger"
	activitysvc "go-activity-planner/modules/activity/service"
	calsvc "go-activity-planner/modules/calendar/service"
	"go-activity-planner/modules/invitation/dto"
	"go-activity-planner/modules/invitation/entity"
	"go-activity-planner/modules/invitation/repository"
	notifDto "go-activity-planner/modules/notification/dto"
	notifEntity "go-activity-planner/modules/notification/entity"
	notifService "go-activity-planner/modules/notification/service"

	"github.com/google/uuid"
)

type InvitationService struct {
	repo            *repository.InvitationRepository
	activityService activitysvc.ActivityServiceInterface
	calendarService calsvc.CalendarService
	notifService    *notifService.NotificationService
}

func NewInvitationService(repo *repository.InvitationRepository, activityService activitysvc.ActivityServiceInterface, calendarService calsvc.CalendarService, notifService *notifService.NotificationService) *InvitationService {
	return &InvitationService{
		repo:            repo,
		activityService: activityService,
		calendarService: calendarService,
		notifService:    notifService,
	}
}

// CreateInvitations invites users to an activity and sends notifications.
// Only the host can invite.
func (s *InvitationService) CreateInvitations(ctx context.Context, inviterID, activityID uuid.UUID, inviteeIDs []uuid.UUID) *errors.AppError {
	logger.Info("InvitationSvc:CreateInvitations:Start", "activity_id", activityID, "invitees", len(inviteeIDs))

	activity, _, appErr := s.activityService.GetActivity(ctx, activityID)
	if appErr != nil {
		return appErr
	}
	if activity.HostID != inviterID {
		return errors.NewAppError(errors.ErrForbidden, "Chỉ người tổ chức mới được mời người tham gia", nil)
	}

	snapshot := entity.ActivityData{
		Title:           activity.Title,
		ActivityType:    activity.ActivityType,
		DurationMinutes: activity.DurationMinutes,
		Slug:            activity.Slug,
	}
	if activity.Description != nil {
		snapshot.Description = *activity.Description
	}
	if activity.TargetDate != nil {
		snapshot.TargetDate = activity.TargetDate.Format(time.RFC3339)
	}

	for _, inviteeID := range inviteeIDs {
		if inviteeID == inviterID {
			continue
		}

		exists, err := s.repo.ExistsForActivityAndInvitee(ctx, activityID, inviteeID)
		if err != nil {
			logger.Error("InvitationSvc:CreateInvitations:ExistsCheckFailed", "invitee_id", inviteeID, "error", err)
			continue
		}
		if exists {
			continue
		}

		invitation := &entity.ActivityInvitation{
			ActivityID:   activityID,
			InviterID:    inviterID,
			InviteeID:    inviteeID,
			Status:       entity.InvitationStatusPending,
			ActivityData: snapshot,
		}

		if err := s.repo.Create(ctx, invitation); err != nil {
			logger.Error("InvitationSvc:CreateInvitations:CreateFailed", "invitee_id", inviteeID, "error", err)
			continue // one failed invitee must not fail the whole batch
		}

		connections, connErr := s.calendarService.GetConnections(ctx, inviteeID)
		calendarConnected := connErr == nil && len(connections) > 0

		if appErr := s.activityService.AddParticipant(ctx, activityID, inviteeID, calendarConnected); appErr != nil {
			logger.Error("InvitationSvc:CreateInvitations:AddParticipantFailed", "invitee_id", inviteeID, "error", appErr)
		}

		notification := &notifDto.CreateNotificationRequest{
			UserID:  inviteeID,
			Title:   "Lời mời hoạt động mới",
			Message: fmt.Sprintf("Bạn được mời tham gia hoạt động: %s", activity.Title),
			Type:    notifEntity.TypeInvitation,
			Data: map[string]interface{}{
				"invitation_id": invitation.ID.String(),
				"activity_id":   activityID.String(),
			},
		}
		if err := s.notifService.Create(ctx, notification); err != nil {
			logger.Error("InvitationSvc:CreateInvitations:NotifyFailed", "invitee_id", inviteeID, "error", err)
		}
	}

	return nil
}

// GetPendingInvitations returns pending invitations for a user
func (s *InvitationService) GetPendingInvitations(ctx context.Context, userID uuid.UUID) (*dto.PendingInvitationsResponse, *errors.AppError) {
	invitations, err := s.repo.GetPendingByInviteeID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn lời mời", err)
	}

	dtos := make([]dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		dtos = append(dtos, dto.InvitationResponse{
			ID:           inv.ID,
			ActivityID:   inv.ActivityID,
			InviterID:    inv.InviterID,
			Status:       string(inv.Status),
			ActivityData: inv.ActivityData,
			CreatedAt:    inv.CreatedAt,
		})
	}

	return &dto.PendingInvitationsResponse{
		Invitations: dtos,
		Total:       len(dtos),
	}, nil
}

// CountPending counts pending invitations for a user
func (s *InvitationService) CountPending(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountPendingByInviteeID(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Không thể đếm lời mời", err)
	}
	return count, nil
}

// Respond accepts or declines an invitation. Responses are rejected once
// the activity's response deadline has passed.
func (s *InvitationService) Respond(ctx context.Context, invitationID, userID uuid.UUID, accepted bool) (*dto.RespondResponse, *errors.AppError) {
	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn lời mời", err)
	}
	if invitation == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy lời mời", nil)
	}
	if invitation.InviteeID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Bạn không phải người được mời", nil)
	}
	if invitation.Status != entity.InvitationStatusPending {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Lời mời đã được phản hồi trước đó", nil)
	}

	deadlineStatus, appErr := s.activityService.GetDeadlineStatus(ctx, invitation.ActivityID, time.Now())
	if appErr != nil {
		return nil, appErr
	}
	if deadlineStatus.Passed {
		return nil, errors.NewAppError(errors.ErrDeadlinePassed, "Hạn phản hồi đã qua, không thể trả lời lời mời", nil)
	}

	status := entity.InvitationStatusDeclined
	if accepted {
		status = entity.InvitationStatusAccepted
	}
	if err := s.repo.UpdateStatus(ctx, invitationID, string(status)); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể cập nhật lời mời", err)
	}

	if appErr := s.activityService.MarkResponded(ctx, invitation.ActivityID, userID, accepted); appErr != nil {
		logger.Error("InvitationSvc:Respond:MarkRespondedFailed", "activity_id", invitation.ActivityID, "error", appErr)
	}

	verb := "từ chối"
	if accepted {
		verb = "chấp nhận"
	}
	notification := &notifDto.CreateNotificationRequest{
		UserID:  invitation.InviterID,
		Title:   "Phản hồi lời mời",
		Message: fmt.Sprintf("Một người tham gia đã %s lời mời hoạt động: %s", verb, invitation.ActivityData.Title),
		Type:    notifEntity.TypeInvitationResponse,
		Data: map[string]interface{}{
			"invitation_id": invitation.ID.String(),
			"activity_id":   invitation.ActivityID.String(),
			"accepted":      accepted,
		},
	}
	if err := s.notifService.Create(ctx, notification); err != nil {
		logger.Error("InvitationSvc:Respond:NotifyFailed", "inviter_id", invitation.InviterID, "error", err)
	}

	logger.Info("InvitationSvc:Respond:Success", "invitation_id", invitationID, "status", status)
	return &dto.RespondResponse{ID: invitationID, Status: string(status)}, nil
}

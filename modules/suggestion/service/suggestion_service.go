package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-activity-planner/core/errors"
	"go-activity-planner/core/logger"
	activityentity "go-activity-planner/modules/activity/entity"
	activitysvc "go-activity-planner/modules/activity/service"
	availsvc "go-activity-planner/modules/availability/service"
	"go-activity-planner/modules/suggestion/dto"
	"go-activity-planner/modules/suggestion/entity"
)

type SuggestionServiceInterface interface {
	GetSuggestions(ctx context.Context, activityID uuid.UUID, rangeStart, rangeEnd time.Time, forecasts []entity.DailyForecast) (*dto.SuggestionsResponse, *errors.AppError)
}

type SuggestionService struct {
	activityService     activitysvc.ActivityServiceInterface
	availabilityService availsvc.AvailabilityServiceInterface
	ranker              *Ranker
}

func NewSuggestionService(activityService activitysvc.ActivityServiceInterface, availabilityService availsvc.AvailabilityServiceInterface) SuggestionServiceInterface {
	return &SuggestionService{
		activityService:     activityService,
		availabilityService: availabilityService,
		ranker:              NewRanker(),
	}
}

// GetSuggestions ranks candidate windows for an activity from the strict
// intersection of the participants' free slots. A zero range defaults to
// the target date's day, or the next 7 days for flexible activities.
func (s *SuggestionService) GetSuggestions(ctx context.Context, activityID uuid.UUID, rangeStart, rangeEnd time.Time, forecasts []entity.DailyForecast) (*dto.SuggestionsResponse, *errors.AppError) {
	logger.Info("SuggestionSvc:GetSuggestions:Start", "activity_id", activityID)

	activity, participants, appErr := s.activityService.GetActivity(ctx, activityID)
	if appErr != nil {
		return nil, appErr
	}

	if rangeStart.IsZero() || rangeEnd.IsZero() {
		rangeStart, rangeEnd = defaultRange(activity.TargetDate, time.Now())
	}
	if !rangeStart.Before(rangeEnd) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Khoảng thời gian gợi ý không hợp lệ", nil)
	}

	userIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		if p.Status == activityentity.ParticipantStatusDeclined {
			continue
		}
		userIDs = append(userIDs, p.UserID)
	}
	if len(userIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Hoạt động không còn người tham gia nào", nil)
	}

	group, appErr := s.availabilityService.GetGroupFreeSlots(ctx, userIDs, rangeStart, rangeEnd)
	if appErr != nil {
		return nil, appErr
	}

	durationHours := float64(activity.DurationMinutes) / 60
	suggestions := s.ranker.Rank(group.FreeSlots, activity.ActivityType, durationHours, forecasts)

	logger.Info("SuggestionSvc:GetSuggestions:Success",
		"activity_id", activityID,
		"suggestions", len(suggestions),
		"connected", group.ConnectedCount,
	)

	return &dto.SuggestionsResponse{
		ActivityID:        activityID.String(),
		Suggestions:       suggestions,
		ConnectedCount:    group.ConnectedCount,
		NotIntegratedIDs:  group.NotIntegratedIDs,
		TotalParticipants: group.TotalParticipants,
	}, nil
}

func defaultRange(targetDate *time.Time, now time.Time) (time.Time, time.Time) {
	if targetDate != nil {
		day := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
		return day, day.AddDate(0, 0, 1)
	}
	return now, now.AddDate(0, 0, 7)
}

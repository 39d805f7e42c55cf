package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"go-activity-planner/core/constants"
	"go-activity-planner/core/entity"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/queue"
	activityentity "go-activity-planner/modules/activity/entity"
	activitysvc "go-activity-planner/modules/activity/service"
)

// stubActivities serves one canned activity with its participants and
// deadline status
type stubActivities struct {
	activity     *activityentity.Activity
	participants []activityentity.ActivityParticipant
	status       *activitysvc.DeadlineStatus
}

func (s *stubActivities) CreateActivity(ctx context.Context, hostID uuid.UUID, req activitysvc.CreateActivityInput) (*activityentity.Activity, *errors.AppError) {
	return nil, nil
}

func (s *stubActivities) GetActivity(ctx context.Context, id uuid.UUID) (*activityentity.Activity, []activityentity.ActivityParticipant, *errors.AppError) {
	return s.activity, s.participants, nil
}

func (s *stubActivities) GetActivityBySlug(ctx context.Context, slugValue string) (*activityentity.Activity, []activityentity.ActivityParticipant, *errors.AppError) {
	return s.activity, s.participants, nil
}

func (s *stubActivities) ListActivities(ctx context.Context, userID uuid.UUID, pageNumber, pageSize int) (*entity.Pagination[activityentity.Activity], *errors.AppError) {
	return nil, nil
}

func (s *stubActivities) UpdateActivity(ctx context.Context, id, userID uuid.UUID, req activitysvc.UpdateActivityInput) (*activityentity.Activity, *errors.AppError) {
	return nil, nil
}

func (s *stubActivities) OverrideDeadline(ctx context.Context, id, userID uuid.UUID, deadline time.Time) (*activityentity.Activity, *errors.AppError) {
	return nil, nil
}

func (s *stubActivities) GetDeadlineStatus(ctx context.Context, id uuid.UUID, now time.Time) (*activitysvc.DeadlineStatus, *errors.AppError) {
	return s.status, nil
}

func (s *stubActivities) FinalizeActivity(ctx context.Context, id, userID uuid.UUID, start, end *time.Time) (*activityentity.Activity, *errors.AppError) {
	return nil, nil
}

func (s *stubActivities) AddParticipant(ctx context.Context, activityID, userID uuid.UUID, calendarConnected bool) *errors.AppError {
	return nil
}

func (s *stubActivities) MarkResponded(ctx context.Context, activityID, userID uuid.UUID, accepted bool) *errors.AppError {
	return nil
}

func (s *stubActivities) SetCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) *errors.AppError {
	return nil
}

func (s *stubActivities) IsResponseClosed(ctx context.Context, activityID uuid.UUID, now time.Time) (bool, *errors.AppError) {
	return false, nil
}

func reminderTask(t *testing.T, activityID uuid.UUID, deadline time.Time) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(queue.DeadlineReminderPayload{ActivityID: activityID, Deadline: deadline})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(constants.TaskDeadlineReminder, payload)
}

// A task scheduled for a deadline that was later rescheduled must be
// dropped without notifying anyone. The nil notification service panics if
// the handler reaches the notify step, so a pass proves the early return.
func TestDeadlineReminderSkipsRescheduledDeadline(t *testing.T) {
	activityID := uuid.New()
	oldDeadline := time.Now().Add(2 * time.Hour).UTC()
	newDeadline := oldDeadline.Add(24 * time.Hour)

	activities := &stubActivities{
		activity: &activityentity.Activity{
			Title:  "Đi cắm trại",
			Status: activityentity.ActivityStatusPlanning,
		},
		participants: []activityentity.ActivityParticipant{
			{UserID: uuid.New(), Status: activityentity.ParticipantStatusPending},
		},
		status: &activitysvc.DeadlineStatus{Deadline: newDeadline, Overridden: true},
	}

	handler := NewDeadlineReminderHandler(nil, activities)
	if err := handler(context.Background(), reminderTask(t, activityID, oldDeadline)); err != nil {
		t.Fatalf("stale reminder must be dropped silently, got %v", err)
	}
}

func TestDeadlineReminderSkipsPassedDeadline(t *testing.T) {
	activities := &stubActivities{
		activity: &activityentity.Activity{
			Title:  "Đi cắm trại",
			Status: activityentity.ActivityStatusPlanning,
		},
		participants: []activityentity.ActivityParticipant{
			{UserID: uuid.New(), Status: activityentity.ParticipantStatusPending},
		},
		status: &activitysvc.DeadlineStatus{Deadline: time.Now().Add(-time.Hour), Passed: true},
	}

	handler := NewDeadlineReminderHandler(nil, activities)
	if err := handler(context.Background(), reminderTask(t, uuid.New(), time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("passed deadline must be dropped silently, got %v", err)
	}
}

func TestDeadlineReminderSkipsFinalizedActivity(t *testing.T) {
	activities := &stubActivities{
		activity: &activityentity.Activity{
			Title:  "Đi cắm trại",
			Status: activityentity.ActivityStatusFinalized,
		},
	}

	handler := NewDeadlineReminderHandler(nil, activities)
	if err := handler(context.Background(), reminderTask(t, uuid.New(), time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("finalized activity must be skipped, got %v", err)
	}
}

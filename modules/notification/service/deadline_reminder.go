package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"go-activity-planner/core/logger"
	"go-activity-planner/core/queue"
	activityentity "go-activity-planner/modules/activity/entity"
	activitysvc "go-activity-planner/modules/activity/service"
	"go-activity-planner/modules/notification/dto"
	"go-activity-planner/modules/notification/entity"
)

// NewDeadlineReminderHandler returns the asynq handler that notifies
// participants who have not yet responded when an activity's response
// deadline approaches.
func NewDeadlineReminderHandler(notifService *NotificationService, activityService activitysvc.ActivityServiceInterface) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload queue.DeadlineReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("DeadlineReminder:BadPayload", "error", err)
			return fmt.Errorf("unmarshal reminder payload: %w", err)
		}

		logger.Info("DeadlineReminder:Start", "activity_id", payload.ActivityID)

		activity, participants, appErr := activityService.GetActivity(ctx, payload.ActivityID)
		if appErr != nil {
			logger.Error("DeadlineReminder:ActivityLookupFailed", "activity_id", payload.ActivityID, "error", appErr)
			return appErr
		}
		if activity.Status != activityentity.ActivityStatusPlanning {
			// already finalized or cancelled, nothing to remind
			return nil
		}

		// the deadline may have been overridden since the task was scheduled
		status, appErr := activityService.GetDeadlineStatus(ctx, payload.ActivityID, time.Now())
		if appErr != nil {
			return appErr
		}
		if status.Passed {
			return nil
		}
		// A rescheduled deadline leaves the old task in the queue under its
		// own ID; drop any task whose payload no longer matches the current
		// deadline. Second-level tolerance absorbs timestamp round-tripping.
		if drift := payload.Deadline.Sub(status.Deadline); drift > time.Second || drift < -time.Second {
			logger.Info("DeadlineReminder:StaleTask", "activity_id", payload.ActivityID, "payload_deadline", payload.Deadline, "current_deadline", status.Deadline)
			return nil
		}

		reminded := 0
		for _, p := range participants {
			if p.Status != activityentity.ParticipantStatusPending {
				continue
			}

			notification := &dto.CreateNotificationRequest{
				UserID:  p.UserID,
				Title:   "Sắp hết hạn phản hồi",
				Message: fmt.Sprintf("Hoạt động \"%s\" sắp chốt: %s", activity.Title, status.RemainingText),
				Type:    entity.TypeDeadlineReminder,
				Data: map[string]interface{}{
					"activity_id": payload.ActivityID.String(),
					"deadline":    status.Deadline.Format(time.RFC3339),
				},
			}
			if err := notifService.Create(ctx, notification); err != nil {
				logger.Error("DeadlineReminder:NotifyFailed", "user_id", p.UserID, "error", err)
				continue
			}
			reminded++
		}

		logger.Info("DeadlineReminder:Done", "activity_id", payload.ActivityID, "reminded", reminded)
		return nil
	}
}

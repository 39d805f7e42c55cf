package queue

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"go-activity-planner/core/config"
	"go-activity-planner/core/constants"
	"go-activity-planner/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

var client *asynq.Client

// Init creates the shared asynq client
func Init(cfg config.RedisConfig) {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Client() *asynq.Client {
	return client
}

func Close() {
	if client != nil {
		_ = client.Close()
	}
}

// DeadlineReminderPayload is the payload of a deadline:reminder task
type DeadlineReminderPayload struct {
	ActivityID uuid.UUID `json:"activity_id"`
	Deadline   time.Time `json:"deadline"`
}

// DeadlineReminderTaskID keys the task on both the activity and the
// deadline value, so rescheduling a deadline enqueues a fresh task instead
// of colliding with the stale one. The stale task still fires; the handler
// compares its payload deadline against the current one and drops it.
func DeadlineReminderTaskID(activityID uuid.UUID, deadline time.Time) string {
	return fmt.Sprintf("deadline-reminder:%s:%d", activityID, deadline.Unix())
}

// EnqueueDeadlineReminder schedules a reminder to run before the deadline.
// Re-enqueueing the same activity+deadline pair is a no-op.
func EnqueueDeadlineReminder(activityID uuid.UUID, deadline time.Time, leadHours int) error {
	if client == nil {
		return fmt.Errorf("queue not initialized")
	}

	payload, err := json.Marshal(DeadlineReminderPayload{ActivityID: activityID, Deadline: deadline})
	if err != nil {
		return err
	}

	processAt := deadline.Add(-time.Duration(leadHours) * time.Hour)
	if processAt.Before(time.Now()) {
		processAt = time.Now()
	}

	task := asynq.NewTask(constants.TaskDeadlineReminder, payload)
	info, err := client.Enqueue(task,
		asynq.ProcessAt(processAt),
		asynq.TaskID(DeadlineReminderTaskID(activityID, deadline)),
		asynq.MaxRetry(3),
	)
	if err != nil {
		// The same activity+deadline pair is already scheduled
		if stderrors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Warn("Queue:EnqueueDeadlineReminder:Duplicate", "activity_id", activityID)
			return nil
		}
		return err
	}

	logger.Info("Queue:EnqueueDeadlineReminder:Scheduled",
		"activity_id", activityID,
		"task_id", info.ID,
		"process_at", processAt,
	)
	return nil
}

// NewServer builds the asynq worker server; handlers are registered by modules
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)
}

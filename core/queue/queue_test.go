package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDeadlineReminderTaskID(t *testing.T) {
	activityID := uuid.New()
	deadline := time.Date(2026, time.March, 13, 18, 0, 0, 0, time.UTC)

	first := DeadlineReminderTaskID(activityID, deadline)
	if first != DeadlineReminderTaskID(activityID, deadline) {
		t.Fatal("same activity and deadline must yield the same task ID")
	}

	// A rescheduled deadline must produce a new task ID, so the fresh
	// reminder is not swallowed by a conflict with the stale one
	moved := DeadlineReminderTaskID(activityID, deadline.Add(-6*time.Hour))
	if moved == first {
		t.Fatalf("rescheduled deadline reused task ID %q", first)
	}

	other := DeadlineReminderTaskID(uuid.New(), deadline)
	if other == first {
		t.Fatal("different activities must not share a task ID")
	}
}

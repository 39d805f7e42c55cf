package service

import (
	"fmt"
	"math"
	"time"

	"go-activity-planner/core/config"
	"go-activity-planner/modules/activity/entity"
)

// DeadlinePolicy computes response deadlines for activities
type DeadlinePolicy struct {
	// ResponseBufferHours before the target date by which responses are due
	ResponseBufferHours int
	// FlexibleHours is the horizon for activities without a target date
	FlexibleHours int
}

// NewDeadlinePolicy builds a policy from config, falling back to the
// 24h/48h defaults when config is not loaded (tests)
func NewDeadlinePolicy() *DeadlinePolicy {
	policy := &DeadlinePolicy{
		ResponseBufferHours: 24,
		FlexibleHours:       48,
	}

	if cfg, ok := config.GetSafe(); ok {
		if cfg.Engine.ResponseBufferHours > 0 {
			policy.ResponseBufferHours = cfg.Engine.ResponseBufferHours
		}
		if cfg.Engine.FlexibleDeadlineHours > 0 {
			policy.FlexibleHours = cfg.Engine.FlexibleDeadlineHours
		}
	}

	return policy
}

// Compute derives the response deadline. With a target date the deadline is
// the target minus the response buffer, clamped to never fall before "now"
// and never after the event itself. An imminent event therefore yields
// deadline == now, meaning responses are due immediately rather than being
// an error. Without a target date the deadline is now + FlexibleHours.
func (p *DeadlinePolicy) Compute(targetDate *time.Time, now time.Time) entity.Deadline {
	if targetDate == nil {
		return entity.Deadline{
			Value: now.Add(time.Duration(p.FlexibleHours) * time.Hour),
		}
	}

	value := targetDate.Add(-time.Duration(p.ResponseBufferHours) * time.Hour)
	if value.After(*targetDate) {
		value = *targetDate
	}
	if value.Before(now) {
		value = now
	}

	return entity.Deadline{
		Value:              value,
		SourceActivityDate: targetDate,
	}
}

// Override replaces the computed deadline verbatim. The only validation is
// that the override must be in the future at the time it is set.
func (p *DeadlinePolicy) Override(value time.Time, targetDate *time.Time, now time.Time) (entity.Deadline, error) {
	if !value.After(now) {
		return entity.Deadline{}, fmt.Errorf("deadline override %s is not in the future", value.Format(time.RFC3339))
	}

	return entity.Deadline{
		Value:              value,
		SourceActivityDate: targetDate,
	}, nil
}

// IsPassed reports whether the deadline has been reached
func IsPassed(d entity.Deadline, now time.Time) bool {
	return !now.Before(d.Value)
}

// RemainingText renders the countdown. Boundary behavior is exact: 0h maps
// to passed, under 24h to hours-left with ceiling (minimum 1 hour), 24h and
// above to days-left with ceiling.
func RemainingText(d entity.Deadline, now time.Time) string {
	remaining := d.Value.Sub(now)
	if remaining <= 0 {
		return "Deadline passed"
	}

	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		if hours == 1 {
			return "1 hour left"
		}
		return fmt.Sprintf("%d hours left", hours)
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	if days == 1 {
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", days)
}

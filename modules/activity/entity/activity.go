package entity

import (
	"time"

	"github.com/google/uuid"

	"go-activity-planner/core/entity"
)

// ActivityStatus represents the lifecycle of a group activity
type ActivityStatus string

const (
	ActivityStatusPlanning  ActivityStatus = "planning"
	ActivityStatusFinalized ActivityStatus = "finalized"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

// Activity types understood by the suggestion ranker
const (
	ActivityTypeDining  = "dining"
	ActivityTypeSports  = "sports"
	ActivityTypeSocial  = "social"
	ActivityTypeOutdoor = "outdoor"
	ActivityTypeCulture = "culture"
	ActivityTypeOther   = "other"
)

// Activity represents a group activity being coordinated
type Activity struct {
	entity.BaseEntity
	HostID       uuid.UUID `db:"host_id" json:"host_id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Slug         string    `db:"slug" json:"slug"`
	ActivityType string    `db:"activity_type" json:"activity_type"`
	// TargetDate is nil for flexible-date activities
	TargetDate         *time.Time     `db:"target_date" json:"target_date,omitempty"`
	DurationMinutes    int            `db:"duration_minutes" json:"duration_minutes"`
	Status             ActivityStatus `db:"status" json:"status"`
	Timezone           string         `db:"timezone" json:"timezone"`
	StartDate          *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate            *time.Time     `db:"end_date" json:"end_date,omitempty"`
	ResponseDeadline   *time.Time     `db:"response_deadline" json:"response_deadline,omitempty"`
	DeadlineOverridden bool           `db:"deadline_overridden" json:"deadline_overridden"`
	DeletedAt          *time.Time     `db:"deleted_at" json:"-"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantStatus represents the status of a participant
type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

// ActivityParticipant links a user to an activity they were invited to
type ActivityParticipant struct {
	UserID               uuid.UUID         `db:"user_id" json:"user_id"`
	ActivityID           uuid.UUID         `db:"activity_id" json:"activity_id"`
	Status               ParticipantStatus `db:"status" json:"status"`
	HasCalendarConnected bool              `db:"has_calendar_connected" json:"has_calendar_connected"`
	RespondedAt          *time.Time        `db:"responded_at" json:"responded_at,omitempty"`
	CreatedAt            time.Time         `db:"created_at" json:"created_at"`
}

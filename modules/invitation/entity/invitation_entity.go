package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// ActivityData is a denormalized snapshot of the activity, stored as JSONB
// so pending invitations render without a join.
type ActivityData struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ActivityType    string `json:"activity_type"`
	TargetDate      string `json:"target_date"` // RFC3339, empty = flexible
	DurationMinutes int    `json:"duration_minutes"`
	Slug            string `json:"slug"`
}

func (a ActivityData) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ActivityData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type ActivityInvitation struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	ActivityID   uuid.UUID        `db:"activity_id" json:"activity_id"`
	InviterID    uuid.UUID        `db:"inviter_id" json:"inviter_id"`
	InviteeID    uuid.UUID        `db:"invitee_id" json:"invitee_id"`
	Status       InvitationStatus `db:"status" json:"status"`
	ActivityData ActivityData     `db:"activity_data" json:"activity_data"`
	RespondedAt  *time.Time       `db:"responded_at" json:"responded_at"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

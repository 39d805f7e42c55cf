package dto

import (
	"github.com/google/uuid"

	availentity "go-activity-planner/modules/availability/entity"
)

type CalendarConnectionResponse struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	CalendarEmail string `json:"calendar_email"`
	IsActive      bool   `json:"is_active"`
	ConnectedAt   string `json:"connected_at"`
}

// UserBusy carries one participant's fetched busy events
type UserBusy struct {
	UserID uuid.UUID               `json:"user_id"`
	Email  string                  `json:"email"`
	Busy   []availentity.BusyEvent `json:"busy"`
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"go-activity-planner/modules/invitation/entity"
)

type CreateInvitationsRequest struct {
	ActivityID string   `json:"activity_id"`
	InviteeIDs []string `json:"invitee_ids"`
}

type InvitationResponse struct {
	ID           uuid.UUID           `json:"id"`
	ActivityID   uuid.UUID           `json:"activity_id"`
	InviterID    uuid.UUID           `json:"inviter_id"`
	Status       string              `json:"status"`
	ActivityData entity.ActivityData `json:"activity_data"`
	CreatedAt    time.Time           `json:"created_at"`
}

type PendingInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
}

type RespondResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

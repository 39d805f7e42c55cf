package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"go-activity-planner/core/database"
	"go-activity-planner/core/logger"
	"go-activity-planner/modules/invitation/entity"

	"github.com/google/uuid"
)

type InvitationRepository struct {
	db database.Database
}

func NewInvitationRepository(db database.Database) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, invitation *entity.ActivityInvitation) error {
	query := `
		INSERT INTO activity_invitations (activity_id, inviter_id, invitee_id, status, activity_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	invitation.CreatedAt = now
	invitation.UpdatedAt = now
	if invitation.Status == "" {
		invitation.Status = entity.InvitationStatusPending
	}

	activityDataValue, err := invitation.ActivityData.Value()
	if err != nil {
		logger.Error("InvitationRepository:Create:ActivityDataValue:Error", "error", err)
		return err
	}

	row := r.db.QueryRowContext(ctx, query,
		invitation.ActivityID,
		invitation.InviterID,
		invitation.InviteeID,
		invitation.Status,
		activityDataValue,
		invitation.CreatedAt,
		invitation.UpdatedAt,
	)
	return row.Scan(&invitation.ID)
}

// GetByID gets an invitation by ID
func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ActivityInvitation, error) {
	query := `
		SELECT id, activity_id, inviter_id, invitee_id, status, activity_data, responded_at, created_at, updated_at
		FROM activity_invitations
		WHERE id = $1
	`
	var inv entity.ActivityInvitation
	err := r.db.GetContext(ctx, &inv, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("InvitationRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &inv, nil
}

// GetPendingByInviteeID gets all pending invitations for a user
func (r *InvitationRepository) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.ActivityInvitation, error) {
	query := `
		SELECT id, activity_id, inviter_id, invitee_id, status, activity_data, responded_at, created_at, updated_at
		FROM activity_invitations
		WHERE invitee_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`
	var invitations []entity.ActivityInvitation
	err := r.db.SelectContext(ctx, &invitations, query, inviteeID)
	if err != nil {
		logger.Error("InvitationRepository:GetPendingByInviteeID:Error", "error", err)
		return nil, err
	}
	return invitations, nil
}

// ExistsForActivityAndInvitee reports whether an invitation already exists
func (r *InvitationRepository) ExistsForActivityAndInvitee(ctx context.Context, activityID, inviteeID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM activity_invitations WHERE activity_id = $1 AND invitee_id = $2`
	if err := r.db.GetContext(ctx, &count, query, activityID, inviteeID); err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus updates the invitation status
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE activity_invitations
		SET status = $1, responded_at = $2, updated_at = $3
		WHERE id = $4
	`
	now := time.Now()
	err := r.db.ExecContext(ctx, query, status, now, now, id)
	if err != nil {
		logger.Error("InvitationRepository:UpdateStatus:Error", "error", err)
		return err
	}
	return nil
}

// CountPendingByInviteeID counts pending invitations for a user
func (r *InvitationRepository) CountPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM activity_invitations WHERE invitee_id = $1 AND status = 'pending'`
	err := r.db.GetContext(ctx, &count, query, inviteeID)
	if err != nil {
		logger.Error("InvitationRepository:CountPendingByInviteeID:Error", "error", err)
		return 0, err
	}
	return count, nil
}

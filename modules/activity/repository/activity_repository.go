package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"go-activity-planner/core/database"
	"go-activity-planner/core/logger"
	"go-activity-planner/modules/activity/entity"
)

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, activity *entity.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Activity, int, error)
	Update(ctx context.Context, activity *entity.Activity) error
	UpdateDeadline(ctx context.Context, id uuid.UUID, deadline *entity.Deadline, overridden bool) error
	Finalize(ctx context.Context, id uuid.UUID, start, end sql.NullTime) error
	AddParticipant(ctx context.Context, p *entity.ActivityParticipant) error
	GetParticipants(ctx context.Context, activityID uuid.UUID) ([]entity.ActivityParticipant, error)
	GetParticipant(ctx context.Context, activityID, userID uuid.UUID) (*entity.ActivityParticipant, error)
	UpdateParticipantStatus(ctx context.Context, activityID, userID uuid.UUID, status entity.ParticipantStatus) error
	SetParticipantCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) error
}

type ActivityRepository struct {
	db database.Database
}

func NewActivityRepository(db database.Database) ActivityRepositoryInterface {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, host_id, title, description, slug, activity_type, target_date,
			duration_minutes, status, timezone, response_deadline, deadline_overridden, created_at, updated_at)
		VALUES (:id, :host_id, :title, :description, :slug, :activity_type, :target_date,
			:duration_minutes, :status, :timezone, :response_deadline, :deadline_overridden, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		logger.Error("ActivityRepository:Create:Error", "error", err)
	}
	return err
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activity entity.Activity
	err := r.db.GetContext(ctx, &activity, `SELECT * FROM activities WHERE id = $1 AND deleted_at IS NULL`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("ActivityRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) GetBySlug(ctx context.Context, slug string) (*entity.Activity, error) {
	var activity entity.Activity
	err := r.db.GetContext(ctx, &activity, `SELECT * FROM activities WHERE slug = $1 AND deleted_at IS NULL`, slug)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("ActivityRepository:GetBySlug:Error", "error", err)
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Activity, int, error) {
	query := `
		SELECT a.* FROM activities a
		LEFT JOIN activity_participants p ON p.activity_id = a.id
		WHERE (a.host_id = $1 OR p.user_id = $1) AND a.deleted_at IS NULL
		GROUP BY a.id
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3`
	activities := make([]entity.Activity, 0)
	if err := r.db.SelectContext(ctx, &activities, query, userID, limit, offset); err != nil {
		logger.Error("ActivityRepository:ListByUser:Error", "error", err)
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(DISTINCT a.id) FROM activities a
		LEFT JOIN activity_participants p ON p.activity_id = a.id
		WHERE (a.host_id = $1 OR p.user_id = $1) AND a.deleted_at IS NULL`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	query := `
		UPDATE activities
		SET title = :title, description = :description, activity_type = :activity_type,
			target_date = :target_date, duration_minutes = :duration_minutes, updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL`
	_, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		logger.Error("ActivityRepository:Update:Error", "error", err)
	}
	return err
}

func (r *ActivityRepository) UpdateDeadline(ctx context.Context, id uuid.UUID, deadline *entity.Deadline, overridden bool) error {
	query := `
		UPDATE activities
		SET response_deadline = $2, deadline_overridden = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
	return r.db.ExecContext(ctx, query, id, deadline.Value, overridden)
}

func (r *ActivityRepository) Finalize(ctx context.Context, id uuid.UUID, start, end sql.NullTime) error {
	query := `
		UPDATE activities
		SET status = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
	return r.db.ExecContext(ctx, query, id, entity.ActivityStatusFinalized, start, end)
}

func (r *ActivityRepository) AddParticipant(ctx context.Context, p *entity.ActivityParticipant) error {
	query := `
		INSERT INTO activity_participants (user_id, activity_id, status, has_calendar_connected, created_at)
		VALUES (:user_id, :activity_id, :status, :has_calendar_connected, :created_at)
		ON CONFLICT (user_id, activity_id) DO NOTHING`
	_, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		logger.Error("ActivityRepository:AddParticipant:Error", "error", err)
	}
	return err
}

func (r *ActivityRepository) GetParticipants(ctx context.Context, activityID uuid.UUID) ([]entity.ActivityParticipant, error) {
	participants := make([]entity.ActivityParticipant, 0)
	query := `SELECT * FROM activity_participants WHERE activity_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &participants, query, activityID); err != nil {
		logger.Error("ActivityRepository:GetParticipants:Error", "error", err)
		return nil, err
	}
	return participants, nil
}

func (r *ActivityRepository) GetParticipant(ctx context.Context, activityID, userID uuid.UUID) (*entity.ActivityParticipant, error) {
	var p entity.ActivityParticipant
	query := `SELECT * FROM activity_participants WHERE activity_id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &p, query, activityID, userID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("ActivityRepository:GetParticipant:Error", "error", err)
		return nil, err
	}
	return &p, nil
}

func (r *ActivityRepository) UpdateParticipantStatus(ctx context.Context, activityID, userID uuid.UUID, status entity.ParticipantStatus) error {
	query := `
		UPDATE activity_participants
		SET status = $3, responded_at = NOW()
		WHERE activity_id = $1 AND user_id = $2`
	return r.db.ExecContext(ctx, query, activityID, userID, status)
}

func (r *ActivityRepository) SetParticipantCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) error {
	query := `UPDATE activity_participants SET has_calendar_connected = $2 WHERE user_id = $1`
	return r.db.ExecContext(ctx, query, userID, connected)
}

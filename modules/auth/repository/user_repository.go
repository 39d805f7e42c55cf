package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"go-activity-planner/core/database"
	"go-activity-planner/core/logger"
	"go-activity-planner/modules/auth/entity"
)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}

type UserRepository struct {
	db database.Database
}

func NewUserRepository(db database.Database) UserRepositoryInterface {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, username, password, is_active, email_verified_at, created_at, updated_at)
		VALUES (:id, :email, :username, :password, :is_active, :email_verified_at, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		logger.Error("UserRepository:CreateUser:Error", "error", err)
	}
	return err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`, email)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("UserRepository:GetUserByEmail:Error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("UserRepository:GetUserByID:Error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	query := `INSERT INTO oauth_states (state, expires_at, created_at) VALUES ($1, $2, NOW())`
	return r.db.ExecContext(ctx, query, state, expiresAt)
}

// ConsumeOAuthState deletes the state row and reports whether it existed
// and had not expired. One-time use.
func (r *UserRepository) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	query := `DELETE FROM oauth_states WHERE state = $1 AND expires_at > NOW()`
	result, err := r.db.SQLx().ExecContext(ctx, query, state)
	if err != nil {
		logger.Error("UserRepository:ConsumeOAuthState:Error", "error", err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

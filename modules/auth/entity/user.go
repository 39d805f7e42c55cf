package entity

import (
	"time"

	"go-activity-planner/core/entity"
)

type User struct {
	entity.BaseEntity
	Email           string     `db:"email" json:"email"`
	Username        *string    `db:"username" json:"username,omitempty"`
	Password        string     `db:"password" json:"-"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at,omitempty"`
	DeletedAt       *time.Time `db:"deleted_at" json:"-"`
}

// OAuthState is a one-time CSRF token for the Google OAuth flow
type OAuthState struct {
	State     string    `db:"state"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

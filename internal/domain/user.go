package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	UserName     string    `json:"user_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the public view of a user embedded in directory listings
// and message payloads. It never carries credentials.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email,omitempty"`
	UserName string    `json:"user_name"`
}

// Summary returns the public view of u.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Email: u.Email, UserName: u.UserName}
}

// Identity is the claim bound to an issued token. It is the only identity
// shape accepted at the auth boundary.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
}

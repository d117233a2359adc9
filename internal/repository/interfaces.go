package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	// ListExcluding returns summaries of every user except the named one.
	ListExcluding(ctx context.Context, userName string) ([]domain.UserSummary, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	// ListBetween returns every message exchanged between the unordered pair
	// {userA, userB}, in either direction, oldest first.
	ListBetween(ctx context.Context, userA, userB uuid.UUID) ([]domain.Message, error)
	// ListForUser returns every message the user sent or received, oldest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
}

// Package testutil provides in-memory repository implementations for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
)

type MemUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *MemUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *MemUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *MemUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *MemUserRepo) GetByUserName(_ context.Context, userName string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.UserName == userName })
}

func (r *MemUserRepo) ListExcluding(_ context.Context, userName string) ([]domain.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.UserSummary
	for _, u := range r.users {
		if u.UserName != userName {
			out = append(out, domain.UserSummary{ID: u.ID, UserName: u.UserName})
		}
	}
	return out, nil
}

func (r *MemUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *MemUserRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *MemUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type MemMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
	users    *MemUserRepo
}

func NewMemMessageRepo(users *MemUserRepo) *MemMessageRepo {
	return &MemMessageRepo{users: users}
}

func (r *MemMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *MemMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	r.mu.Lock()
	var found *domain.Message
	for i := range r.messages {
		if r.messages[i].ID == id {
			m := r.messages[i]
			found = &m
			break
		}
	}
	r.mu.Unlock()
	if found == nil {
		return nil, nil
	}
	r.attachViews(ctx, found)
	return found, nil
}

func (r *MemMessageRepo) ListBetween(ctx context.Context, userA, userB uuid.UUID) ([]domain.Message, error) {
	return r.list(ctx, func(m domain.Message) bool {
		return (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA)
	})
}

func (r *MemMessageRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error) {
	return r.list(ctx, func(m domain.Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	})
}

func (r *MemMessageRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func (r *MemMessageRepo) list(ctx context.Context, match func(domain.Message) bool) ([]domain.Message, error) {
	r.mu.Lock()
	var out []domain.Message
	for _, m := range r.messages {
		if match(m) {
			out = append(out, m)
		}
	}
	r.mu.Unlock()
	for i := range out {
		r.attachViews(ctx, &out[i])
	}
	return out, nil
}

func (r *MemMessageRepo) attachViews(ctx context.Context, msg *domain.Message) {
	if r.users == nil {
		return
	}
	if sender, _ := r.users.GetByID(ctx, msg.SenderID); sender != nil {
		msg.Sender = sender.Summary()
	}
	if receiver, _ := r.users.GetByID(ctx, msg.ReceiverID); receiver != nil {
		msg.Receiver = receiver.Summary()
	}
}

type MemNotificationRepo struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func NewMemNotificationRepo() *MemNotificationRepo {
	return &MemNotificationRepo{}
}

func (r *MemNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *MemNotificationRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	// newest first
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

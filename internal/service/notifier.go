package service

import (
	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
)

// Notifier delivers realtime events. All methods are best-effort and
// fire-and-forget: delivery failure never fails the triggering operation.
type Notifier interface {
	// NotifyNewMessage fans out a persisted message to the conversation room.
	NotifyNewMessage(msg *domain.Message)
	// NotifyLoginSuccess announces a successful login to every connected client.
	NotifyLoginSuccess(userID uuid.UUID)
}

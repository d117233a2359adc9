package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeJoinRoom = "join_room"
	EventTypePing     = "ping"
)

// Event types - Server → Client
const (
	EventTypeNewMessage   = "new_message"
	EventTypeLoginSuccess = "login_success"
	EventTypePong         = "pong"
	EventTypeError        = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"event"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type JoinRoomPayload struct {
	UserID      uuid.UUID `json:"user_id"`
	OtherUserID uuid.UUID `json:"other_user_id"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.Message
}

type LoginSuccessPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}

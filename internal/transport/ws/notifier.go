package ws

import (
	"log"

	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeNewMessage, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToRoom(RoomKey(msg.SenderID, msg.ReceiverID), evt)
}

func (n *HubNotifier) NotifyLoginSuccess(userID uuid.UUID) {
	evt, err := NewEvent(EventTypeLoginSuccess, LoginSuccessPayload{UserID: userID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastGlobal(evt)
}

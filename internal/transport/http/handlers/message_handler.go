package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/service"
	"github.com/dkoss/relay/internal/transport/http/middleware"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send persists a message and broadcasts it to the conversation room.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SenderID    uuid.UUID `json:"sender_id"`
		ReceiverID  uuid.UUID `json:"receiver_id"`
		MessageText string    `json:"message_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.SenderID == uuid.Nil || input.ReceiverID == uuid.Nil {
		writeMsg(w, http.StatusBadRequest, "sender_id and receiver_id are required")
		return
	}
	if input.MessageText == "" {
		writeMsg(w, http.StatusBadRequest, "message_text is required")
		return
	}

	msg, err := h.messageService.Send(r.Context(), input.SenderID, input.ReceiverID, input.MessageText)
	if err != nil {
		if errors.Is(err, service.ErrReceiverNotFound) {
			writeMsg(w, http.StatusNotFound, "Receiver not found")
		} else {
			log.Printf("ERROR send message: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

// History returns every message between the sender/receiver pair, oldest first.
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	senderID, err := uuid.Parse(r.URL.Query().Get("sender_id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "sender_id is required")
		return
	}
	receiverID, err := uuid.Parse(r.URL.Query().Get("receiver_id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "receiver_id is required")
		return
	}

	messages, err := h.messageService.History(r.Context(), senderID, receiverID)
	if err != nil {
		log.Printf("ERROR message history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// ForUser returns every message the user sent or received.
func (h *MessageHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages, err := h.messageService.ForUser(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR messages for user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// Notifications returns the caller's notifications, newest first.
func (h *MessageHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	notifications, err := h.messageService.Notifications(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("ERROR list notifications: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
	"github.com/dkoss/relay/internal/repository"
)

var ErrReceiverNotFound = errors.New("receiver not found")

type MessageService struct {
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notifier         Notifier
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Send persists a message and then fans it out to the conversation room.
// The receiver must exist; the sender is not checked. The durable write
// always happens before the broadcast, so a client that fetches history
// right after receiving the event sees the message.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, text string) (*domain.Message, error) {
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  domain.Timestamp(time.Now()),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		// The re-read joins the sender/receiver views; if the row is not
		// visible yet, fall back to what we wrote.
		full = msg
	}

	s.createNotification(ctx, full)

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(full)
	}

	return full, nil
}

// History returns every message between the unordered pair, oldest first.
func (s *MessageService) History(ctx context.Context, senderID, receiverID uuid.UUID) ([]domain.Message, error) {
	messages, err := s.messageRepo.ListBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// ForUser returns every message the user sent or received.
func (s *MessageService) ForUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error) {
	messages, err := s.messageRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// Notifications returns the user's notifications, newest first.
func (s *MessageService) Notifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

// createNotification records a notification row for the receiver. Failure is
// logged and swallowed; notifications are best-effort like broadcasts.
func (s *MessageService) createNotification(ctx context.Context, msg *domain.Message) {
	from := msg.SenderID.String()
	if msg.Sender != nil {
		from = msg.Sender.UserName
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    msg.ReceiverID,
		Message:   fmt.Sprintf("New message from %s", from),
		Timestamp: msg.Timestamp,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("ERROR creating notification for %s: %v", msg.ReceiverID, err)
	}
}

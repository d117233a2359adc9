package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkoss/relay/internal/domain"
)

// Sender rows are joined with LEFT JOIN: the send path does not require the
// sender to exist, so the joined view may be absent.
const messageSelect = `
	SELECT m.id, m.sender_id, m.receiver_id, m.text, m.created_at,
		s.email, s.user_name, r.email, r.user_name
	FROM messages m
	LEFT JOIN users s ON m.sender_id = s.id
	LEFT JOIN users r ON m.receiver_id = r.id`

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Text, msg.Timestamp.Time(),
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	row := r.pool.QueryRow(ctx, messageSelect+" WHERE m.id = $1", id)
	msg, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *MessageRepo) ListBetween(ctx context.Context, userA, userB uuid.UUID) ([]domain.Message, error) {
	query := messageSelect + `
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
			OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC`

	return r.listMessages(ctx, query, userA, userB)
}

func (r *MessageRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error) {
	query := messageSelect + `
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY m.created_at ASC`

	return r.listMessages(ctx, query, userID)
}

func (r *MessageRepo) listMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		msg          domain.Message
		createdAt    time.Time
		senderEmail  *string
		senderName   *string
		recvEmail    *string
		recvUserName *string
	)
	err := row.Scan(
		&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Text, &createdAt,
		&senderEmail, &senderName, &recvEmail, &recvUserName,
	)
	if err != nil {
		return nil, err
	}
	msg.Timestamp = domain.Timestamp(createdAt)
	if senderName != nil {
		msg.Sender = &domain.UserSummary{ID: msg.SenderID, Email: deref(senderEmail), UserName: *senderName}
	}
	if recvUserName != nil {
		msg.Receiver = &domain.UserSummary{ID: msg.ReceiverID, Email: deref(recvEmail), UserName: *recvUserName}
	}
	return &msg, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/message-service/domain"
	"github.com/skillswap/gdpr-system/shared/models"
)

// PostgresMessageRepository implements MessageRepository using PostgreSQL
type PostgresMessageRepository struct {
	db *sqlx.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *sqlx.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// postgresConversation represents a conversation in the database
type postgresConversation struct {
	ID          string    `db:"id"`
	InitiatorID string    `db:"initiator_id"`
	ResponderID string    `db:"responder_id"`
	Subject     string    `db:"subject"`
	CreatedAt   time.Time `db:"created_at"`
}

// postgresMessage represents a message in the database
type postgresMessage struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	SenderName     string    `db:"sender_name"`
	RecipientID    string    `db:"recipient_id"`
	Body           string    `db:"body"`
	SentAt         time.Time `db:"sent_at"`
	Anonymized     bool      `db:"anonymized"`
}

// AnonymizeSent blanks content and sender identity on the user's sent
// messages. Already anonymized rows are left alone so reruns count zero.
func (r *PostgresMessageRepository) AnonymizeSent(ctx context.Context, tx *sqlx.Tx, userID models.ID) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE messages
		 SET body = $1, sender_name = $2, anonymized = TRUE
		 WHERE sender_id = $3 AND anonymized = FALSE`,
		domain.AnonymizedBody, domain.AnonymizedSender, userID.String())
	if err != nil {
		return 0, errors.Wrap(err, "failed to anonymize sent messages")
	}
	return res.RowsAffected()
}

// DeleteReceived removes messages addressed to the user
func (r *PostgresMessageRepository) DeleteReceived(ctx context.Context, tx *sqlx.Tx, userID models.ID) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM messages WHERE recipient_id = $1`, userID.String())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete received messages")
	}
	return res.RowsAffected()
}

// DeleteEmptyConversations drops the user's conversations that no longer
// contain any messages
func (r *PostgresMessageRepository) DeleteEmptyConversations(ctx context.Context, tx *sqlx.Tx, userID models.ID) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM conversations c
		 WHERE (c.initiator_id = $1 OR c.responder_id = $1)
		   AND NOT EXISTS (SELECT 1 FROM messages m WHERE m.conversation_id = c.id)`,
		userID.String())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete empty conversations")
	}
	return res.RowsAffected()
}

// ExportForUser collects the user's conversations and messages
func (r *PostgresMessageRepository) ExportForUser(ctx context.Context, userID models.ID) (*domain.Export, error) {
	var pgConversations []postgresConversation
	err := r.db.SelectContext(ctx, &pgConversations,
		`SELECT id, initiator_id, responder_id, subject, created_at
		 FROM conversations
		 WHERE initiator_id = $1 OR responder_id = $1
		 ORDER BY created_at ASC`,
		userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversations")
	}

	var pgMessages []postgresMessage
	err = r.db.SelectContext(ctx, &pgMessages,
		`SELECT id, conversation_id, sender_id, sender_name, recipient_id, body, sent_at, anonymized
		 FROM messages
		 WHERE sender_id = $1 OR recipient_id = $1
		 ORDER BY sent_at ASC`,
		userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load messages")
	}

	export := &domain.Export{
		UserID:        userID,
		Conversations: make([]domain.Conversation, len(pgConversations)),
		Messages:      make([]domain.Message, len(pgMessages)),
	}
	for i, pgConv := range pgConversations {
		export.Conversations[i] = domain.Conversation{
			ID:          models.ID(pgConv.ID),
			InitiatorID: models.ID(pgConv.InitiatorID),
			ResponderID: models.ID(pgConv.ResponderID),
			Subject:     pgConv.Subject,
			CreatedAt:   pgConv.CreatedAt,
		}
	}
	for i, pgMsg := range pgMessages {
		export.Messages[i] = domain.Message{
			ID:             models.ID(pgMsg.ID),
			ConversationID: models.ID(pgMsg.ConversationID),
			SenderID:       models.ID(pgMsg.SenderID),
			SenderName:     pgMsg.SenderName,
			RecipientID:    models.ID(pgMsg.RecipientID),
			Body:           pgMsg.Body,
			SentAt:         pgMsg.SentAt,
			Anonymized:     pgMsg.Anonymized,
		}
	}

	return export, nil
}

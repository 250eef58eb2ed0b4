package application

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/message-service/domain"
	"github.com/skillswap/gdpr-system/shared/models"
)

// MessageRepository is the persistence port for conversations and
// messages. Scrubbing mutations take the caller's transaction so the
// step and its dedup claim commit atomically.
type MessageRepository interface {
	// AnonymizeSent blanks content and sender identity on every message
	// the user sent. Returns the number of messages touched.
	AnonymizeSent(ctx context.Context, tx *sqlx.Tx, userID models.ID) (int64, error)

	// DeleteReceived removes messages addressed to the user. Returns the
	// number of messages removed.
	DeleteReceived(ctx context.Context, tx *sqlx.Tx, userID models.ID) (int64, error)

	// DeleteEmptyConversations drops the user's conversations that no
	// longer contain any messages.
	DeleteEmptyConversations(ctx context.Context, tx *sqlx.Tx, userID models.ID) (int64, error)

	// ExportForUser collects the user's conversations and messages
	ExportForUser(ctx context.Context, userID models.ID) (*domain.Export, error)
}

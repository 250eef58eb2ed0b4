package saga

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/models"
)

var (
	ErrNotFound        = errors.New("saga not found")
	ErrVersionConflict = errors.New("saga version conflict")
)

// Store is the durable record of in-flight and settled deletion sagas.
// Mutating calls take the caller's transaction so saga updates, outbox
// staging and the dedup ledger commit atomically.
type Store interface {
	Save(ctx context.Context, tx *sqlx.Tx, s *DeletionSaga) error
	Update(ctx context.Context, tx *sqlx.Tx, s *DeletionSaga) error
	FindByID(ctx context.Context, id models.ID) (*DeletionSaga, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id models.ID) (*DeletionSaga, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]models.ID, error)
}

package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
)

var _ saga.Store = (*PostgresSagaStore)(nil)

// PostgresSagaStore persists deletion sagas as single rows with the
// steps packed into jsonb. next_deadline mirrors the earliest sent-step
// deadline so the timeout sweeper can query overdue sagas without
// unpacking steps. Rows are never deleted: settled sagas are the audit
// trail of every deletion request.
type PostgresSagaStore struct {
	db *sqlx.DB
}

func NewPostgresSagaStore(db *sqlx.DB) *PostgresSagaStore {
	return &PostgresSagaStore{db: db}
}

type sagaRow struct {
	ID             string     `db:"id"`
	UserID         string     `db:"user_id"`
	UserExternalID string     `db:"user_external_id"`
	DeletionType   string     `db:"deletion_type"`
	Status         string     `db:"status"`
	Reason         string     `db:"reason"`
	Steps          []byte     `db:"steps"`
	NextDeadline   *time.Time `db:"next_deadline"`
	Version        int        `db:"version"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func toRow(s *saga.DeletionSaga) (*sagaRow, error) {
	steps, err := json.Marshal(s.Steps)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal saga steps")
	}

	return &sagaRow{
		ID:             s.ID.String(),
		UserID:         s.UserID.String(),
		UserExternalID: s.UserExternalID,
		DeletionType:   string(s.DeletionType),
		Status:         string(s.Status),
		Reason:         s.Reason,
		Steps:          steps,
		NextDeadline:   s.NextDeadline(),
		Version:        s.Version.Value,
		CreatedAt:      s.Timestamps.CreatedAt,
		UpdatedAt:      s.Timestamps.UpdatedAt,
	}, nil
}

func (r *sagaRow) toDomain() (*saga.DeletionSaga, error) {
	var steps []*saga.Step
	if err := json.Unmarshal(r.Steps, &steps); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal saga steps")
	}

	return &saga.DeletionSaga{
		ID:             models.ID(r.ID),
		UserID:         models.ID(r.UserID),
		UserExternalID: r.UserExternalID,
		DeletionType:   events.DeletionType(r.DeletionType),
		Status:         saga.Status(r.Status),
		Reason:         r.Reason,
		Steps:          steps,
		Timestamps: models.Timestamps{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		Version: models.Version{Value: r.Version},
	}, nil
}

const sagaColumns = `id, user_id, user_external_id, deletion_type, status, reason, steps, next_deadline, version, created_at, updated_at`

func (st *PostgresSagaStore) Save(ctx context.Context, tx *sqlx.Tx, s *saga.DeletionSaga) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO deletion_sagas (`+sagaColumns+`)
		 VALUES (:id, :user_id, :user_external_id, :deletion_type, :status, :reason, :steps, :next_deadline, :version, :created_at, :updated_at)`,
		row,
	)
	return errors.Wrap(err, "failed to insert saga")
}

func (st *PostgresSagaStore) Update(ctx context.Context, tx *sqlx.Tx, s *saga.DeletionSaga) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}

	res, err := tx.NamedExecContext(ctx,
		`UPDATE deletion_sagas
		 SET status = :status, reason = :reason, steps = :steps,
		     next_deadline = :next_deadline, version = :version, updated_at = :updated_at
		 WHERE id = :id`,
		row,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update saga")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return saga.ErrNotFound
	}
	return nil
}

func (st *PostgresSagaStore) FindByID(ctx context.Context, id models.ID) (*saga.DeletionSaga, error) {
	var row sagaRow
	err := st.db.GetContext(ctx, &row,
		`SELECT `+sagaColumns+` FROM deletion_sagas WHERE id = $1`,
		id.String(),
	)
	if err == sql.ErrNoRows {
		return nil, saga.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find saga")
	}
	return row.toDomain()
}

// FindByIDForUpdate loads a saga with a row lock, serializing concurrent
// result processing for the same saga.
func (st *PostgresSagaStore) FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id models.ID) (*saga.DeletionSaga, error) {
	var row sagaRow
	err := tx.GetContext(ctx, &row,
		`SELECT `+sagaColumns+` FROM deletion_sagas WHERE id = $1 FOR UPDATE`,
		id.String(),
	)
	if err == sql.ErrNoRows {
		return nil, saga.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock saga")
	}
	return row.toDomain()
}

func (st *PostgresSagaStore) FindExpired(ctx context.Context, now time.Time, limit int) ([]models.ID, error) {
	var raw []string
	err := st.db.SelectContext(ctx, &raw,
		`SELECT id FROM deletion_sagas
		 WHERE status IN ($1, $2) AND next_deadline IS NOT NULL AND next_deadline <= $3
		 ORDER BY next_deadline ASC
		 LIMIT $4`,
		string(saga.StatusInProgress), string(saga.StatusCompensating), now, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find expired sagas")
	}

	ids := make([]models.ID, len(raw))
	for i, id := range raw {
		ids[i] = models.ID(id)
	}
	return ids, nil
}

package application

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/user-service/domain"
)

// UserRepository is the persistence port for user accounts. Mutations
// take the caller's transaction so a deletion step and its dedup claim
// commit atomically. Lookups return nil without error when no row
// matches.
type UserRepository interface {
	FindByID(ctx context.Context, id models.ID) (*domain.User, error)
	FindByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id models.ID) (*domain.User, error)
	Archive(ctx context.Context, tx *sqlx.Tx, sagaID models.ID, user *domain.User) error
	Update(ctx context.Context, tx *sqlx.Tx, user *domain.User) error
	Delete(ctx context.Context, tx *sqlx.Tx, id models.ID) error
	Restore(ctx context.Context, tx *sqlx.Tx, sagaID models.ID) (*domain.User, error)
}

package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
)

// GetDeletion returns the current saga record; completion of a deletion
// request is observed by polling this.
type GetDeletion struct {
	sagas saga.Store
}

func NewGetDeletion(sagas saga.Store) *GetDeletion {
	return &GetDeletion{sagas: sagas}
}

func (uc *GetDeletion) Execute(ctx context.Context, id models.ID) (*saga.DeletionSaga, error) {
	if id.IsZero() {
		return nil, errors.New("saga ID is required")
	}
	return uc.sagas.FindByID(ctx, id)
}

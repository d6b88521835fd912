package repository

import (
	"context"

	"seller-onboarding/internal/domain/model"
)

// TaskerRepository is the port for tasker persistence.
type TaskerRepository interface {
	// UpsertByPhone inserts t, or returns the existing row when the phone is
	// already registered. The existing row is never modified.
	UpsertByPhone(ctx context.Context, tx Tx, t *model.Tasker) (*model.Tasker, error)
	FindByPhone(ctx context.Context, tx Tx, phone string) (*model.Tasker, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.Tasker, error)
	Count(ctx context.Context, tx Tx) (int, error)
}

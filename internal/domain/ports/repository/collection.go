package repository

import (
	"context"

	"seller-onboarding/internal/domain/model"
)

type CollectionRepository interface {
	Create(ctx context.Context, tx Tx, c *model.Collection) error
	FindBySellerID(ctx context.Context, tx Tx, sellerID string) (*model.Collection, error)
	ListSellerIDsByTasker(ctx context.Context, tx Tx, taskerID string) ([]string, error)
}

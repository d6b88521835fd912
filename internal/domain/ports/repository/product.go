package repository

import (
	"context"

	"seller-onboarding/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, tx Tx, p *model.Product) error
	ListBySeller(ctx context.Context, tx Tx, sellerID string) ([]*model.Product, error)
	Count(ctx context.Context, tx Tx) (int, error)
}

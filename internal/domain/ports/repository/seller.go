package repository

import (
	"context"

	"seller-onboarding/internal/domain/model"
)

type SellerRepository interface {
	Create(ctx context.Context, tx Tx, s *model.Seller) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Seller, error)
	Count(ctx context.Context, tx Tx) (int, error)
}

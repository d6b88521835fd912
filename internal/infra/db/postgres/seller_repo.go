package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/repository"
)

var _ repository.SellerRepository = (*PostgresSellerRepo)(nil)

type PostgresSellerRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSellerRepo(pool *pgxpool.Pool) *PostgresSellerRepo {
	return &PostgresSellerRepo{pool: pool}
}

func (r *PostgresSellerRepo) Create(ctx context.Context, tx repository.Tx, s *model.Seller) error {
	const q = `
INSERT INTO sellers (id, name, phone_number, gst_number, shop_image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := execSQL(ctx, r.pool, tx, q, s.ID, s.Name, s.PhoneNumber, s.GSTNumber, s.ShopImageURL, s.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

func (r *PostgresSellerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Seller, error) {
	const q = `
SELECT id, name, phone_number, gst_number, shop_image_url, created_at
  FROM sellers WHERE id=$1;`
	var s model.Seller
	if err := pickRow(ctx, r.pool, tx, q, id).Scan(&s.ID, &s.Name, &s.PhoneNumber, &s.GSTNumber, &s.ShopImageURL, &s.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *PostgresSellerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	var n int
	if err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM sellers;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sellers: %w", err)
	}
	return n, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/repository"
)

var _ repository.CollectionRepository = (*PostgresCollectionRepo)(nil)

type PostgresCollectionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCollectionRepo(pool *pgxpool.Pool) *PostgresCollectionRepo {
	return &PostgresCollectionRepo{pool: pool}
}

func (r *PostgresCollectionRepo) Create(ctx context.Context, tx repository.Tx, c *model.Collection) error {
	const q = `
INSERT INTO collections (id, tasker_id, seller_id, created_at)
VALUES ($1, $2, $3, $4);`
	if _, err := execSQL(ctx, r.pool, tx, q, c.ID, c.TaskerID, c.SellerID, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *PostgresCollectionRepo) FindBySellerID(ctx context.Context, tx repository.Tx, sellerID string) (*model.Collection, error) {
	const q = `SELECT id, tasker_id, seller_id, created_at FROM collections WHERE seller_id=$1;`
	var c model.Collection
	if err := pickRow(ctx, r.pool, tx, q, sellerID).Scan(&c.ID, &c.TaskerID, &c.SellerID, &c.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *PostgresCollectionRepo) ListSellerIDsByTasker(ctx context.Context, tx repository.Tx, taskerID string) ([]string, error) {
	const q = `SELECT seller_id FROM collections WHERE tasker_id=$1 ORDER BY seller_id;`
	rows, err := queryRows(ctx, r.pool, tx, q, taskerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"

	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/repository"
)

var _ repository.ProductRepository = (*PostgresProductRepo)(nil)

type PostgresProductRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepo(pool *pgxpool.Pool) *PostgresProductRepo {
	return &PostgresProductRepo{pool: pool}
}

// Create inserts one product. Prices travel as text and are cast to NUMERIC.
func (r *PostgresProductRepo) Create(ctx context.Context, tx repository.Tx, p *model.Product) error {
	const q = `
INSERT INTO products (
  id, seller_id, name, image1_url, image2_url, image3_url, mrp, msp, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7::numeric,$8::numeric,$9
);`
	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.SellerID, p.Name, p.Image1URL, p.Image2URL, p.Image3URL,
		p.MRP.String(), p.MSP.String(), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresProductRepo) ListBySeller(ctx context.Context, tx repository.Tx, sellerID string) ([]*model.Product, error) {
	const q = `
SELECT id, seller_id, name, image1_url, image2_url, image3_url, mrp::text, msp::text, created_at
  FROM products WHERE seller_id=$1
 ORDER BY created_at, id;`
	rows, err := queryRows(ctx, r.pool, tx, q, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*model.Product
	for rows.Next() {
		var p model.Product
		var mrp, msp string
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Image1URL, &p.Image2URL, &p.Image3URL, &mrp, &msp, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.MRP, err = scanPrice(mrp); err != nil {
			return nil, err
		}
		if p.MSP, err = scanPrice(msp); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PostgresProductRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	var n int
	if err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM products;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanPrice(s string) (model.Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return model.Price{}, fmt.Errorf("scan price %q: %w", s, err)
	}
	return model.PriceFromDecimal(d), nil
}

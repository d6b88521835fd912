package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/repository"
)

var _ repository.TaskerRepository = (*PostgresTaskerRepo)(nil)

type PostgresTaskerRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTaskerRepo(pool *pgxpool.Pool) *PostgresTaskerRepo {
	return &PostgresTaskerRepo{pool: pool}
}

// UpsertByPhone inserts t unless the phone exists, then reads back whichever
// row owns the phone. A concurrent insert of the same phone blocks on the
// unique index until the other tx finishes.
func (r *PostgresTaskerRepo) UpsertByPhone(ctx context.Context, tx repository.Tx, t *model.Tasker) (*model.Tasker, error) {
	const ins = `
INSERT INTO taskers (id, name, phone, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (phone) DO NOTHING;`
	if _, err := execSQL(ctx, r.pool, tx, ins, t.ID, t.Name, t.Phone, t.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert tasker: %w", err)
	}
	return r.FindByPhone(ctx, tx, t.Phone)
}

func (r *PostgresTaskerRepo) FindByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.Tasker, error) {
	const q = `SELECT id, name, phone, created_at FROM taskers WHERE phone=$1;`
	var t model.Tasker
	if err := pickRow(ctx, r.pool, tx, q, phone).Scan(&t.ID, &t.Name, &t.Phone, &t.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PostgresTaskerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Tasker, error) {
	const q = `SELECT id, name, phone, created_at FROM taskers WHERE id=$1;`
	var t model.Tasker
	if err := pickRow(ctx, r.pool, tx, q, id).Scan(&t.ID, &t.Name, &t.Phone, &t.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PostgresTaskerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	var n int
	if err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM taskers;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count taskers: %w", err)
	}
	return n, nil
}

package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const reviewColumns = `id::text, product_id::text, customer_id::text, author, rating, COALESCE(comment, ''), status, created_at`

func (r *postgresRepo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, customer_id, author, rating, comment, status)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
RETURNING id::text, created_at
`
	res := rv
	err := r.pool.QueryRow(ctx, q, rv.ProductID, rv.CustomerID, rv.Author, rv.Rating, rv.Comment, rv.Status).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) ListApprovedByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return r.list(ctx, `
SELECT `+reviewColumns+`
FROM reviews
WHERE product_id = $1 AND status = 'approved'
ORDER BY created_at DESC
`, productID)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status string) ([]domain.Review, error) {
	return r.list(ctx, `
SELECT `+reviewColumns+`
FROM reviews
WHERE status = $1
ORDER BY created_at ASC
`, status)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE reviews
SET status = $1
WHERE id = $2
`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.Author, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	return result, rows.Err()
}

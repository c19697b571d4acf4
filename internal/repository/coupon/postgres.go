package coupon

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// GetByCode is case-insensitive: codes are stored lowercased and matched
// with lower().
func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `
SELECT id::text, code, type, value, expires_at, created_at
FROM coupons
WHERE code = lower($1)
LIMIT 1
`
	var c domain.Coupon
	err := r.pool.QueryRow(ctx, q, code).Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (code, type, value, expires_at)
VALUES (lower($1), $2, $3, $4)
ON CONFLICT (code) DO UPDATE SET
    type = EXCLUDED.type,
    value = EXCLUDED.value,
    expires_at = EXCLUDED.expires_at
RETURNING id::text, code, created_at
`
	res := c
	if err := r.pool.QueryRow(ctx, q, c.Code, c.Type, c.Value, c.ExpiresAt).Scan(&res.ID, &res.Code, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

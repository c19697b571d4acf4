package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, key, name, parent_id::text, created_at
FROM categories
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Key, &c.Name, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (key, name, parent_id)
VALUES ($1, $2, NULLIF($3, '')::uuid)
ON CONFLICT (key) DO UPDATE SET
    name = EXCLUDED.name,
    parent_id = EXCLUDED.parent_id
RETURNING id::text, created_at
`
	parentID := ""
	if c.ParentID != nil {
		parentID = *c.ParentID
	}
	res := c
	if err := r.pool.QueryRow(ctx, q, c.Key, c.Name, parentID).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

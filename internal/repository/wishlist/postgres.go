package wishlist

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

func (r *postgresRepo) Add(ctx context.Context, customerID, productID string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO wishlist_items (customer_id, product_id)
VALUES ($1, $2)
`, customerID, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, customerID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM wishlist_items
WHERE customer_id = $1 AND product_id = $2
`, customerID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	const q = `
SELECT w.id::text, w.customer_id::text, w.product_id::text, w.created_at,
       p.id::text, p.key, p.sku, p.name, COALESCE(p.description, ''), p.price_cents, p.currency, p.created_at
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.customer_id = $1
ORDER BY w.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		var p domain.Product
		if err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.ProductID,
			&item.CreatedAt,
			&p.ID, &p.Key, &p.SKU, &p.Name, &p.Description, &p.PriceCents, &p.Currency, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		result = append(result, item)
	}
	return result, rows.Err()
}

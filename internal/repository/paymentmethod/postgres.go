package paymentmethod

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

func (r *postgresRepo) Create(ctx context.Context, pm domain.PaymentMethod) (*domain.PaymentMethod, error) {
	const q = `
INSERT INTO payment_methods (customer_id, brand, last4, gateway_token)
VALUES ($1, $2, $3, $4)
RETURNING id::text, created_at
`
	res := pm
	if err := r.pool.QueryRow(ctx, q, pm.CustomerID, pm.Brand, pm.Last4, pm.GatewayToken).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.PaymentMethod, error) {
	const q = `
SELECT id::text, customer_id::text, brand, last4, gateway_token, created_at
FROM payment_methods
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentMethod
	for rows.Next() {
		var pm domain.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.CustomerID, &pm.Brand, &pm.Last4, &pm.GatewayToken, &pm.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, pm)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, customerID, id string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM payment_methods
WHERE customer_id = $1 AND id = $2
`, customerID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, number, customer_id::text, checkout_session_id::text, items, shipping_address, payment_brand, payment_last4, subtotal_cents, shipping_cents, discount_cents, total_cents, currency, coupon, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	addrJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, err
	}
	var couponJSON []byte
	if o.Coupon != nil {
		if couponJSON, err = json.Marshal(o.Coupon); err != nil {
			return nil, err
		}
	}

	const q = `
INSERT INTO orders (
    number, customer_id, checkout_session_id, items, shipping_address,
    payment_brand, payment_last4,
    subtotal_cents, shipping_cents, discount_cents, total_cents, currency,
    coupon, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id::text, created_at
`
	res := o
	err = r.pool.QueryRow(ctx, q,
		o.Number,
		o.CustomerID,
		o.CheckoutSessionID,
		itemsJSON,
		addrJSON,
		o.Payment.Brand,
		o.Payment.Last4,
		o.Pricing.SubtotalCents,
		o.Pricing.ShippingCents,
		o.Pricing.DiscountCents,
		o.Pricing.TotalCents,
		o.Pricing.Currency,
		couponJSON,
		o.Status,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			existing, getErr := r.GetByCheckoutSession(ctx, o.CheckoutSessionID)
			if getErr != nil {
				return nil, getErr
			}
			return existing, domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: create number=%s error=%v", o.Number, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.scanOrder(r.pool.QueryRow(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE id = $1
`, id))
}

func (r *postgresRepo) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	return r.scanOrder(r.pool.QueryRow(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE checkout_session_id = $1
`, sessionID))
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`, customerID)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE status = $1
ORDER BY created_at DESC
`, status)
}

// UpdateStatus moves the order from one status to another. The WHERE clause
// carries the expected current status, so a concurrent admin action loses
// cleanly with ErrNotFound instead of overwriting.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE id = $2 AND status = $3
`, to, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON, addrJSON []byte
	var couponJSON []byte
	err := row.Scan(
		&o.ID,
		&o.Number,
		&o.CustomerID,
		&o.CheckoutSessionID,
		&itemsJSON,
		&addrJSON,
		&o.Payment.Brand,
		&o.Payment.Last4,
		&o.Pricing.SubtotalCents,
		&o.Pricing.ShippingCents,
		&o.Pricing.DiscountCents,
		&o.Pricing.TotalCents,
		&o.Pricing.Currency,
		&couponJSON,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addrJSON, &o.ShippingAddress); err != nil {
		return nil, err
	}
	if len(couponJSON) > 0 {
		var c domain.AppliedCoupon
		if err := json.Unmarshal(couponJSON, &c); err != nil {
			return nil, err
		}
		o.Coupon = &c
	}
	return &o, nil
}

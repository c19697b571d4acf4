package checkout

import (
	"context"
	"encoding/json"
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

const sessionColumns = `id::text, customer_id::text, step, shipping_address, coupon, discount_cents, client_secret, intent_amount_cents, idempotency_key, status, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, s domain.CheckoutSession) (*domain.CheckoutSession, error) {
	addrJSON, err := json.Marshal(s.ShippingAddress)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO checkout_sessions (customer_id, step, shipping_address, discount_cents, client_secret, idempotency_key, status)
VALUES ($1, $2, $3, 0, '', $4, 'active')
RETURNING id::text, created_at, updated_at
`
	res := s
	res.Status = domain.CheckoutActive
	if err := r.pool.QueryRow(ctx, q, s.CustomerID, s.Step, addrJSON, s.IdempotencyKey).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) GetActiveByCustomer(ctx context.Context, customerID string) (*domain.CheckoutSession, error) {
	return r.scanSession(r.pool.QueryRow(ctx, `
SELECT `+sessionColumns+`
FROM checkout_sessions
WHERE customer_id = $1 AND status = 'active'
ORDER BY created_at DESC
LIMIT 1
`, customerID))
}

// Update persists the mutable wizard state: step, shipping form, applied
// coupon and the negotiated client secret with its amount.
func (r *postgresRepo) Update(ctx context.Context, s domain.CheckoutSession) error {
	addrJSON, err := json.Marshal(s.ShippingAddress)
	if err != nil {
		return err
	}
	var couponJSON []byte
	if s.Coupon != nil {
		if couponJSON, err = json.Marshal(s.Coupon); err != nil {
			return err
		}
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE checkout_sessions
SET step = $1,
    shipping_address = $2,
    coupon = $3,
    discount_cents = $4,
    client_secret = $5,
    intent_amount_cents = $6,
    updated_at = now()
WHERE id = $7 AND status = 'active'
`, s.Step, addrJSON, couponJSON, s.DiscountCents, s.ClientSecret, s.IntentAmountCents, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Complete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE checkout_sessions
SET status = 'completed', updated_at = now()
WHERE id = $1 AND status = 'active'
`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, customerID, id string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM checkout_sessions
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

func (r *postgresRepo) scanSession(row pgx.Row) (*domain.CheckoutSession, error) {
	var s domain.CheckoutSession
	var addrJSON, couponJSON []byte
	err := row.Scan(
		&s.ID,
		&s.CustomerID,
		&s.Step,
		&addrJSON,
		&couponJSON,
		&s.DiscountCents,
		&s.ClientSecret,
		&s.IntentAmountCents,
		&s.IdempotencyKey,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &s.ShippingAddress); err != nil {
			return nil, err
		}
	}
	if len(couponJSON) > 0 {
		var c domain.AppliedCoupon
		if err := json.Unmarshal(couponJSON, &c); err != nil {
			return nil, err
		}
		s.Coupon = &c
	}
	return &s, nil
}

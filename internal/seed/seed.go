// Package seed loads demo catalog data for manual testing.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	Key    string
	Name   string
	Parent string
}

type productSeed struct {
	Key         string
	SKU         string
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Currency    string
}

type couponSeed struct {
	Code  string
	Type  string
	Value int64
}

// Apply inserts demo categories, products, and coupons. Idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Key: "furniture", Name: "Furniture"},
		{Key: "desks", Name: "Desks", Parent: "furniture"},
		{Key: "chairs", Name: "Chairs", Parent: "furniture"},
		{Key: "lighting", Name: "Lighting"},
	}
	categoryIDs := map[string]string{}
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c, categoryIDs[c.Parent])
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Key, err)
		}
		categoryIDs[c.Key] = id
	}

	products := []productSeed{
		{
			Key:         "oak-standing-desk",
			SKU:         "SKU-DESK-OAK",
			Name:        "Oak Standing Desk",
			Description: "Height adjustable solid oak desk",
			Category:    "desks",
			PriceCents:  120000,
			Currency:    "USD",
		},
		{
			Key:         "mesh-task-chair",
			SKU:         "SKU-CHAIR-MESH",
			Name:        "Mesh Task Chair",
			Description: "Breathable mesh back with lumbar support",
			Category:    "chairs",
			PriceCents:  45000,
			Currency:    "USD",
		},
		{
			Key:         "brass-desk-lamp",
			SKU:         "SKU-LAMP-BRASS",
			Name:        "Brass Desk Lamp",
			Description: "Adjustable arm, warm LED",
			Category:    "lighting",
			PriceCents:  15000,
			Currency:    "USD",
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p, categoryIDs[p.Category]); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}

	coupons := []couponSeed{
		{Code: "welcome10", Type: "percentage", Value: 10},
		{Code: "save20", Type: "fixed", Value: 20000},
	}
	for _, c := range coupons {
		if err := upsertCoupon(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert coupon %s: %w", c.Code, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed, parentID string) (string, error) {
	const q = `
INSERT INTO categories (key, name, parent_id)
VALUES ($1, $2, NULLIF($3, '')::uuid)
ON CONFLICT (key) DO UPDATE
SET name = EXCLUDED.name,
    parent_id = EXCLUDED.parent_id
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.Key, c.Name, parentID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed, categoryID string) error {
	const q = `
INSERT INTO products (key, sku, name, description, category_id, price_cents, currency, attributes)
VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, '{}'::jsonb)
ON CONFLICT (key) DO UPDATE
SET sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category_id = EXCLUDED.category_id,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency
`
	_, err := pool.Exec(ctx, q, p.Key, p.SKU, p.Name, p.Description, categoryID, p.PriceCents, p.Currency)
	return err
}

func upsertCoupon(ctx context.Context, pool *pgxpool.Pool, c couponSeed) error {
	const q = `
INSERT INTO coupons (code, type, value)
VALUES (lower($1), $2, $3)
ON CONFLICT (code) DO UPDATE
SET type = EXCLUDED.type,
    value = EXCLUDED.value
`
	_, err := pool.Exec(ctx, q, c.Code, c.Type, c.Value)
	return err
}

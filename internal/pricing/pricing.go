// Package pricing derives the money breakdown of a cart: subtotal,
// shipping, discount and the clamped total, optionally converted into a
// display currency.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Policy carries the shipping and minimum-charge rules. All amounts are in
// minor units of the base currency.
type Policy struct {
	FreeShippingThresholdCents int64
	ShippingCostCents          int64
	MinChargeCents             int64
	BaseCurrency               string
}

// Quote computes the pricing snapshot for a set of cart lines and an
// already-resolved discount amount. The total clamps at zero no matter how
// large the discount is; the discount itself is recorded unclamped.
func Quote(lines []domain.CartLine, discountCents int64, p Policy) domain.PricingSnapshot {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.UnitPriceCents * int64(l.Quantity)
	}

	var shipping int64
	if subtotal < p.FreeShippingThresholdCents {
		shipping = p.ShippingCostCents
	}

	total := subtotal + shipping - discountCents
	if total < 0 {
		total = 0
	}

	return domain.PricingSnapshot{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		DiscountCents: discountCents,
		TotalCents:    total,
		Currency:      p.BaseCurrency,
	}
}

// Convert maps a snapshot into a display currency using one multiplicative
// rate. Each component is converted independently and the total re-clamped,
// so the snapshot invariant holds in the converted currency too.
func Convert(s domain.PricingSnapshot, rate decimal.Decimal, currency string) domain.PricingSnapshot {
	out := domain.PricingSnapshot{
		SubtotalCents: convertCents(s.SubtotalCents, rate),
		ShippingCents: convertCents(s.ShippingCents, rate),
		DiscountCents: convertCents(s.DiscountCents, rate),
		Currency:      currency,
	}
	total := out.SubtotalCents + out.ShippingCents - out.DiscountCents
	if total < 0 {
		total = 0
	}
	out.TotalCents = total
	return out
}

// BelowMinimumCharge reports whether a total is under the payment
// processor's minimum chargeable amount. This is a hard gate: the wizard
// must not reach the payment step while it holds.
func (p Policy) BelowMinimumCharge(totalCents int64) bool {
	return totalCents < p.MinChargeCents
}

func convertCents(cents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(rate).Round(0).IntPart()
}

package domain

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a discount rule keyed by a case-insensitive code. Value means
// percent of subtotal for percentage coupons and a flat amount in minor
// units for fixed coupons.
type Coupon struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     int64      `json:"value"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AppliedCoupon is the snapshot of a coupon embedded into a checkout
// session and, eventually, an order.
type AppliedCoupon struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

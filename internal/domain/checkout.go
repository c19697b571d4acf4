package domain

import "time"

// Checkout wizard steps. Linear, no skipping.
const (
	StepShipping = 0
	StepReview   = 1
	StepPayment  = 2
)

const (
	CheckoutActive    = "active"
	CheckoutCompleted = "completed"
)

// CheckoutSession holds the state of one customer's checkout wizard. The
// idempotency key is minted when the session starts and keys the eventual
// order row, so a double submit after a successful payment cannot create a
// second order.
type CheckoutSession struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"-"`
	Step            int            `json:"step"`
	ShippingAddress Address        `json:"shippingAddress"`
	Coupon          *AppliedCoupon `json:"coupon,omitempty"`
	DiscountCents   int64          `json:"discountCents"`
	ClientSecret    string         `json:"-"`
	// IntentAmountCents is the total the payment intent was negotiated
	// for. The final submit must match it, so the charged amount can
	// never drift from the recorded order total.
	IntentAmountCents int64 `json:"-"`
	IdempotencyKey  string         `json:"-"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

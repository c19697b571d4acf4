package domain

import "time"

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// orderTransitions is the set of legal status moves. Completed and
// cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderCompleted, OrderCancelled},
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PricingSnapshot is the derived money breakdown frozen into an order.
// Invariant: TotalCents = max(0, subtotal + shipping - discount).
type PricingSnapshot struct {
	SubtotalCents int64  `json:"subtotalCents"`
	ShippingCents int64  `json:"shippingCents"`
	DiscountCents int64  `json:"discountCents"`
	TotalCents    int64  `json:"totalCents"`
	Currency      string `json:"currency"`
}

type PaymentInfo struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// Order is created exactly once per successful checkout. Everything but
// Status is immutable after creation; its existence implies the gateway
// confirmed the payment.
type Order struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	CustomerID        string          `json:"customerId"`
	CheckoutSessionID string          `json:"-"`
	Items             []OrderItem     `json:"items"`
	ShippingAddress   Address         `json:"shippingAddress"`
	Payment           PaymentInfo     `json:"payment"`
	Pricing           PricingSnapshot `json:"pricing"`
	Coupon            *AppliedCoupon  `json:"coupon,omitempty"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type OrderItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
}

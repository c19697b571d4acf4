// Package events publishes order-lifecycle messages for back-office
// consumers. Publishing is best effort: a broker outage is logged by the
// caller and never fails the customer-facing request.
package events

import "time"

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

type Envelope struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId,omitempty"`
	Status     string    `json:"status,omitempty"`
	TotalCents int64     `json:"totalCents,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Package payment wraps the external payment gateway: intent negotiation
// before the payment step and card confirmation at order submit.
package payment

import "context"

// Card carries the raw card fields submitted at the payment step. They are
// forwarded to the gateway and never persisted.
type Card struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
	CVC      string `json:"cvc"`
}

// CardInfo is the display metadata the gateway returns on success.
type CardInfo struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// Intent is the pre-negotiated payment session.
type Intent struct {
	ClientSecret string `json:"clientSecret"`
}

// GatewayError is a card or processing error reported by the gateway. Its
// message is surfaced to the customer verbatim.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// Gateway is the confirmation handshake contract. CreateIntent negotiates a
// client secret for an amount; Confirm submits the card against that secret
// and reports success with card metadata or a GatewayError.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (Intent, error)
	Confirm(ctx context.Context, clientSecret string, card Card, billingName string) (CardInfo, error)
}

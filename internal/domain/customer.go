package domain

import "time"

type Customer struct {
	ID                       string    `json:"id"`
	Email                    string    `json:"email"`
	PasswordHash             string    `json:"-"`
	FirstName                string    `json:"firstName,omitempty"`
	LastName                 string    `json:"lastName,omitempty"`
	Addresses                []Address `json:"addresses"`
	DefaultShippingAddressID string    `json:"defaultShippingAddressId,omitempty"`
	CreatedAt                time.Time `json:"createdAt"`
}

// Address is a shipping destination saved on the customer profile. Once an
// order is placed the chosen address is embedded into the order as an
// immutable snapshot.
type Address struct {
	ID             string `json:"id,omitempty"`
	RecipientName  string `json:"recipientName"`
	Street         string `json:"street"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	RecipientPhone string `json:"recipientPhone"`
}

// PaymentMethod is a saved card reference. Only the gateway token plus
// display metadata are stored, never card numbers.
type PaymentMethod struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"-"`
	Brand        string    `json:"brand"`
	Last4        string    `json:"last4"`
	GatewayToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Create inserts the order. When another order already exists for the
	// same checkout session it returns that order together with
	// domain.ErrAlreadyExists, so callers can treat a double submit as a
	// replay rather than a failure.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// GetByCheckoutSession returns the order created for a checkout
	// session, if any. Submit retries use it to find the first order.
	GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, from, to string) error
}

package checkout

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s domain.CheckoutSession) (*domain.CheckoutSession, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
	Update(ctx context.Context, s domain.CheckoutSession) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, customerID, id string) error
}

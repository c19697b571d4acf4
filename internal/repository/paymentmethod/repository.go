package paymentmethod

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, pm domain.PaymentMethod) (*domain.PaymentMethod, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.PaymentMethod, error)
	Delete(ctx context.Context, customerID, id string) error
}

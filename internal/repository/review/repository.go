package review

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, rv domain.Review) (*domain.Review, error)
	ListApprovedByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Review, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

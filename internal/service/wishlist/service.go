package wishlist

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	wishlistrepo "storefront/internal/repository/wishlist"
)

type Service struct {
	repo        wishlistrepo.Repository
	productRepo productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo wishlistrepo.Repository, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

func (s *Service) List(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return items, nil
}

// Add puts a product on the wishlist. Adding a product twice is a no-op.
func (s *Service) Add(ctx context.Context, customerID, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errors.New("productId required")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("product not found")
		}
		return err
	}
	err := s.repo.Add(ctx, customerID, productID)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (s *Service) Remove(ctx context.Context, customerID, productID string) error {
	return s.repo.Remove(ctx, customerID, productID)
}

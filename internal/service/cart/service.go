package cart

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

// Service owns the customer's active cart. A cart is created lazily on the
// first mutation and retired when an order completes.
type Service struct {
	repo        cartRepo
	productRepo productRepo
	currency    string
}

type cartRepo interface {
	Create(ctx context.Context, customerID, currency string) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	AddLineItem(ctx context.Context, cartID string, product domain.Product, quantity int) error
	ChangeLineItemQuantity(ctx context.Context, cartID, lineItemID string, quantity int) error
	Clear(ctx context.Context, cartID string) error
}

type productRepo interface {
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo, currency string) *Service {
	return &Service{repo: repo, productRepo: productRepo, currency: currency}
}

// GetActive returns the customer's active cart, or an empty unsaved cart
// when none exists yet.
func (s *Service) GetActive(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := s.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{
				CustomerID: customerID,
				Currency:   s.currency,
				State:      "active",
				Lines:      []domain.CartLine{},
			}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of the product identified by SKU, merging with an
// existing line for the same product.
func (s *Service) AddItem(ctx context.Context, customerID, sku string, quantity int) (*domain.Cart, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, errors.New("sku required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}

	cart, err := s.activeOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddLineItem(ctx, cart.ID, *product, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

// ChangeQuantity sets a line's quantity; zero or negative removes the line.
func (s *Service) ChangeQuantity(ctx context.Context, customerID, lineItemID string, quantity int) (*domain.Cart, error) {
	lineItemID = strings.TrimSpace(lineItemID)
	if lineItemID == "" {
		return nil, errors.New("lineItemId required")
	}
	cart, err := s.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ChangeLineItemQuantity(ctx, cart.ID, lineItemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

// Clear empties and retires the customer's active cart. Missing cart is
// not an error: clearing an empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, customerID string) error {
	cart, err := s.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

func (s *Service) activeOrCreate(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := s.repo.GetActiveByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, customerID, s.currency)
}

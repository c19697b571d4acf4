// Package paymentmethod manages saved card references on a customer
// profile. Only gateway tokens plus display metadata pass through here;
// raw card data never does.
package paymentmethod

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	pmrepo "storefront/internal/repository/paymentmethod"
)

type Service struct {
	repo pmrepo.Repository
}

func New(repo pmrepo.Repository) *Service {
	return &Service{repo: repo}
}

// SaveInput carries the tokenized card reference returned by the gateway.
type SaveInput struct {
	Brand        string `json:"brand"`
	Last4        string `json:"last4"`
	GatewayToken string `json:"gatewayToken"`
}

func (s *Service) List(ctx context.Context, customerID string) ([]domain.PaymentMethod, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) Save(ctx context.Context, customerID string, in SaveInput) (*domain.PaymentMethod, error) {
	if strings.TrimSpace(in.GatewayToken) == "" {
		return nil, errors.New("gatewayToken required")
	}
	if len(in.Last4) != 4 {
		return nil, errors.New("last4 must be four digits")
	}
	return s.repo.Create(ctx, domain.PaymentMethod{
		CustomerID:   customerID,
		Brand:        strings.ToLower(strings.TrimSpace(in.Brand)),
		Last4:        in.Last4,
		GatewayToken: in.GatewayToken,
	})
}

func (s *Service) Delete(ctx context.Context, customerID, id string) error {
	return s.repo.Delete(ctx, customerID, id)
}

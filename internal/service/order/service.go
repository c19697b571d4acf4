package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/events"
	orderrepo "storefront/internal/repository/order"
)

// Service serves order history for customers and status administration
// for the back office. Everything except status is immutable after
// creation.
type Service struct {
	repo      orderrepo.Repository
	publisher publisher
	logger    *log.Logger
}

type publisher interface {
	Publish(ctx context.Context, e events.Envelope) error
}

func New(repo orderrepo.Repository, pub publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, publisher: pub, logger: logger}
}

// ListByCustomer returns the customer's order history, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Get returns one order, scoped to its owner.
func (s *Service) Get(ctx context.Context, customerID, id string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListByStatus is the back-office listing.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return s.repo.ListByStatus(ctx, status)
}

// ChangeStatus applies one administrative status transition. Illegal moves
// are rejected against the order transition table before touching storage.
func (s *Service) ChangeStatus(ctx context.Context, id, to string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionOrder(o.Status, to) {
		return nil, fmt.Errorf("cannot move order from %s to %s", o.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, o.Status, to); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("order status changed concurrently, retry")
		}
		return nil, err
	}
	o.Status = to

	if s.publisher != nil {
		e := events.Envelope{
			Type:       events.TypeOrderStatusChanged,
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			Status:     to,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.logger.Printf("publish %s for order %s: %v", e.Type, o.ID, err)
		}
	}
	return o, nil
}

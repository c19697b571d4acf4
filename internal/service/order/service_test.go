package order

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/events"
)

type stubRepo struct {
	order     *domain.Order
	getErr    error
	updateErr error
	lastFrom  string
	lastTo    string
}

func (s *stubRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	return &o, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	clone := *s.order
	return &clone, nil
}

func (s *stubRepo) GetByCheckoutSession(_ context.Context, _ string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) ListByCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) ListByStatus(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, _, from, to string) error {
	s.lastFrom = from
	s.lastTo = to
	return s.updateErr
}

type capturedEvents struct {
	events []events.Envelope
}

func (c *capturedEvents) Publish(_ context.Context, e events.Envelope) error {
	c.events = append(c.events, e)
	return nil
}

func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{domain.OrderPending, domain.OrderProcessing, true},
		{domain.OrderProcessing, domain.OrderShipped, true},
		{domain.OrderShipped, domain.OrderCompleted, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderShipped, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderShipped, false},
		{domain.OrderCompleted, domain.OrderCancelled, false},
		{domain.OrderCancelled, domain.OrderProcessing, false},
		{domain.OrderCompleted, domain.OrderProcessing, false},
	}
	for _, c := range cases {
		if got := domain.CanTransitionOrder(c.from, c.to); got != c.ok {
			t.Fatalf("%s -> %s = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestChangeStatus_RejectsIllegalMove(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", Status: domain.OrderCompleted}}
	svc := New(repo, nil, nil)

	if _, err := svc.ChangeStatus(context.Background(), "o1", domain.OrderCancelled); err == nil {
		t.Fatal("completed order must not be cancellable")
	}
	if repo.lastTo != "" {
		t.Fatal("repository should not be touched for illegal transitions")
	}
}

func TestChangeStatus_PublishesEvent(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", CustomerID: "cust", Status: domain.OrderPending}}
	pub := &capturedEvents{}
	svc := New(repo, pub, nil)

	o, err := svc.ChangeStatus(context.Background(), "o1", domain.OrderProcessing)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if o.Status != domain.OrderProcessing {
		t.Fatalf("status = %s", o.Status)
	}
	if repo.lastFrom != domain.OrderPending || repo.lastTo != domain.OrderProcessing {
		t.Fatalf("update called with %s -> %s", repo.lastFrom, repo.lastTo)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.TypeOrderStatusChanged {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestChangeStatus_ConcurrentChange(t *testing.T) {
	repo := &stubRepo{
		order:     &domain.Order{ID: "o1", Status: domain.OrderPending},
		updateErr: domain.ErrNotFound,
	}
	svc := New(repo, nil, nil)

	if _, err := svc.ChangeStatus(context.Background(), "o1", domain.OrderProcessing); err == nil {
		t.Fatal("expected concurrency error")
	}
}

func TestGet_ScopedToOwner(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", CustomerID: "cust-a"}}
	svc := New(repo, nil, nil)

	if _, err := svc.Get(context.Background(), "cust-b", "o1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for foreign order", err)
	}
	if _, err := svc.Get(context.Background(), "cust-a", "o1"); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}

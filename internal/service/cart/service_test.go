package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	createCart        *domain.Cart
	createErr         error
	createCalls       int
	getByIDResults    []*domain.Cart
	getByIDErr        error
	getByIDCalls      int
	activeCart        *domain.Cart
	activeErr         error
	addLineItemErr    error
	changeLineItemErr error
	clearErr          error
	lastAddCartID     string
	lastAddProduct    domain.Product
	lastAddQty        int
	lastChangeLineID  string
	lastChangeQty     int
	lastClearedCartID string
}

func (s *stubRepo) Create(_ context.Context, _, _ string) (*domain.Cart, error) {
	s.createCalls++
	return s.createCart, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Cart, error) {
	if s.getByIDErr != nil {
		return nil, s.getByIDErr
	}
	var res *domain.Cart
	if len(s.getByIDResults) > 0 {
		idx := s.getByIDCalls
		if idx >= len(s.getByIDResults) {
			idx = len(s.getByIDResults) - 1
		}
		res = s.getByIDResults[idx]
	}
	s.getByIDCalls++
	return res, nil
}

func (s *stubRepo) GetActiveByCustomer(_ context.Context, _ string) (*domain.Cart, error) {
	return s.activeCart, s.activeErr
}

func (s *stubRepo) AddLineItem(_ context.Context, cartID string, product domain.Product, quantity int) error {
	s.lastAddCartID = cartID
	s.lastAddProduct = product
	s.lastAddQty = quantity
	return s.addLineItemErr
}

func (s *stubRepo) ChangeLineItemQuantity(_ context.Context, _, lineItemID string, quantity int) error {
	s.lastChangeLineID = lineItemID
	s.lastChangeQty = quantity
	return s.changeLineItemErr
}

func (s *stubRepo) Clear(_ context.Context, cartID string) error {
	s.lastClearedCartID = cartID
	return s.clearErr
}

type stubProductRepo struct {
	product *domain.Product
	err     error
}

func (s *stubProductRepo) GetBySKU(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestGetActive_ReturnsEmptyCartWhenNoneExists(t *testing.T) {
	svc := New(&stubRepo{activeErr: domain.ErrNotFound}, &stubProductRepo{}, "USD")

	cart, err := svc.GetActive(context.Background(), "cust")
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if cart.ID != "" || len(cart.Lines) != 0 || cart.Currency != "USD" {
		t.Fatalf("unexpected empty cart %+v", cart)
	}
}

func TestAddItem_Validation(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{}, "USD")

	if _, err := svc.AddItem(context.Background(), "cust", " ", 1); err == nil {
		t.Fatal("blank sku should fail")
	}
	if _, err := svc.AddItem(context.Background(), "cust", "SKU1", 0); err == nil {
		t.Fatal("zero quantity should fail")
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{err: domain.ErrNotFound}, "USD")

	_, err := svc.AddItem(context.Background(), "cust", "SKU1", 1)
	if err == nil || err.Error() != "product not found" {
		t.Fatalf("got %v, want product not found", err)
	}
}

func TestAddItem_CreatesCartLazily(t *testing.T) {
	created := &domain.Cart{ID: "cart-1", CustomerID: "cust"}
	repo := &stubRepo{
		activeErr:      domain.ErrNotFound,
		createCart:     created,
		getByIDResults: []*domain.Cart{created},
	}
	product := &domain.Product{ID: "prod-1", SKU: "SKU1", Name: "Widget", PriceCents: 1000}
	svc := New(repo, &stubProductRepo{product: product}, "USD")

	cart, err := svc.AddItem(context.Background(), "cust", "SKU1", 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("create called %d times, want 1", repo.createCalls)
	}
	if repo.lastAddCartID != "cart-1" || repo.lastAddProduct.ID != "prod-1" || repo.lastAddQty != 2 {
		t.Fatalf("unexpected add call cart=%s product=%s qty=%d", repo.lastAddCartID, repo.lastAddProduct.ID, repo.lastAddQty)
	}
	if cart.ID != "cart-1" {
		t.Fatalf("cart id = %s", cart.ID)
	}
}

func TestAddItem_ReusesActiveCart(t *testing.T) {
	active := &domain.Cart{ID: "cart-1", CustomerID: "cust"}
	repo := &stubRepo{activeCart: active, getByIDResults: []*domain.Cart{active}}
	svc := New(repo, &stubProductRepo{product: &domain.Product{ID: "p", SKU: "SKU1"}}, "USD")

	if _, err := svc.AddItem(context.Background(), "cust", "SKU1", 1); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("should not create a second active cart")
	}
}

func TestChangeQuantity(t *testing.T) {
	active := &domain.Cart{ID: "cart-1"}
	repo := &stubRepo{activeCart: active, getByIDResults: []*domain.Cart{active}}
	svc := New(repo, &stubProductRepo{}, "USD")

	if _, err := svc.ChangeQuantity(context.Background(), "cust", "", 1); err == nil {
		t.Fatal("blank line id should fail")
	}
	if _, err := svc.ChangeQuantity(context.Background(), "cust", "line-1", 3); err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	if repo.lastChangeLineID != "line-1" || repo.lastChangeQty != 3 {
		t.Fatalf("unexpected change call %s %d", repo.lastChangeLineID, repo.lastChangeQty)
	}
}

func TestChangeQuantity_RepoError(t *testing.T) {
	repo := &stubRepo{activeCart: &domain.Cart{ID: "cart-1"}, changeLineItemErr: domain.ErrNotFound}
	svc := New(repo, &stubProductRepo{}, "USD")

	if _, err := svc.ChangeQuantity(context.Background(), "cust", "line-1", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	repo := &stubRepo{activeCart: &domain.Cart{ID: "cart-1"}}
	svc := New(repo, &stubProductRepo{}, "USD")

	if err := svc.Clear(context.Background(), "cust"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if repo.lastClearedCartID != "cart-1" {
		t.Fatalf("cleared %s, want cart-1", repo.lastClearedCartID)
	}
}

func TestClear_NoActiveCartIsNoop(t *testing.T) {
	repo := &stubRepo{activeErr: domain.ErrNotFound}
	svc := New(repo, &stubProductRepo{}, "USD")

	if err := svc.Clear(context.Background(), "cust"); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

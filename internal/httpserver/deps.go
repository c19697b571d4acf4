package httpserver

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/payment"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
	pmsvc "storefront/internal/service/paymentmethod"
	reviewsvc "storefront/internal/service/review"
)

// Service contracts the handlers are written against. The concrete
// implementations live under internal/service; tests plug in stubs.

type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AddAddress(ctx context.Context, customerID string, in customersvc.AddressInput) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type ProductService interface {
	List(ctx context.Context, categoryID string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CartService interface {
	GetActive(ctx context.Context, customerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID, sku string, quantity int) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, customerID, lineItemID string, quantity int) (*domain.Cart, error)
}

type WishlistService interface {
	List(ctx context.Context, customerID string) ([]domain.WishlistItem, error)
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
}

type CouponService interface {
	Validate(ctx context.Context, code string, subtotalCents int64) (*domain.Coupon, int64, error)
}

type CheckoutService interface {
	Start(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
	Get(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
	Quote(ctx context.Context, customerID string) (domain.PricingSnapshot, error)
	SetShippingAddress(ctx context.Context, customerID string, in checkoutsvc.AddressInput) (*domain.CheckoutSession, error)
	UseSavedAddress(ctx context.Context, customer *domain.Customer, addressID string) (*domain.CheckoutSession, error)
	ApplyCoupon(ctx context.Context, customerID, code string) (*domain.CheckoutSession, error)
	Advance(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
	Back(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
	PlaceOrder(ctx context.Context, customerID string, card payment.Card, billingName string) (*domain.Order, error)
}

type OrderService interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Get(ctx context.Context, customerID, id string) (*domain.Order, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Order, error)
	ChangeStatus(ctx context.Context, id, to string) (*domain.Order, error)
}

type ReviewService interface {
	Submit(ctx context.Context, customerID, author string, in reviewsvc.SubmitInput) (*domain.Review, error)
	ListApproved(ctx context.Context, productID string) ([]domain.Review, error)
	ListPending(ctx context.Context) ([]domain.Review, error)
	Moderate(ctx context.Context, id, decision string) error
}

type PaymentMethodService interface {
	List(ctx context.Context, customerID string) ([]domain.PaymentMethod, error)
	Save(ctx context.Context, customerID string, in pmsvc.SaveInput) (*domain.PaymentMethod, error)
	Delete(ctx context.Context, customerID, id string) error
}

// Deps carries the services the routes are built on.
type Deps struct {
	Customers      CustomerService
	Products       ProductService
	Categories     CategoryService
	Carts          CartService
	Wishlists      WishlistService
	Coupons        CouponService
	Checkout       CheckoutService
	Orders         OrderService
	Reviews        ReviewService
	PaymentMethods PaymentMethodService

	// AdminToken guards the back-office routes; empty disables them.
	AdminToken string
}

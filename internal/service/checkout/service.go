// Package checkout drives the checkout wizard: a linear
// shipping -> review -> payment state machine over a persisted session,
// ending in payment confirmation and order creation.
package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/payment"
	"storefront/internal/pricing"
)

var (
	// ErrNoSession is returned when the customer has no active checkout
	// session.
	ErrNoSession = errors.New("no active checkout session")
	// ErrBelowMinimumCharge blocks the payment step for totals under the
	// processor minimum.
	ErrBelowMinimumCharge = errors.New("order total is below the minimum chargeable amount")
	// ErrCouponLocked is returned when a coupon was already applied; the
	// session must reset before another code can be tried.
	ErrCouponLocked = errors.New("a coupon is already applied")
	// ErrPaymentNotReady fails a submit that reaches the gateway without a
	// negotiated client secret.
	ErrPaymentNotReady = errors.New("payment session not initialized")
	// ErrCheckoutLocked rejects changes that would move the total once
	// the payment intent has been negotiated.
	ErrCheckoutLocked = errors.New("totals are locked at the payment step; go back to review to make changes")
	// ErrStaleIntent rejects a submit whose recomputed total no longer
	// matches the amount the payment intent was negotiated for.
	ErrStaleIntent = errors.New("order total changed since the payment step; review the order again")
	// ErrEmptyCart blocks checkout on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// FieldErrors maps shipping form fields to validation messages. It is an
// error so step guards can return it directly; handlers render it
// per-field rather than as one blob.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

type sessionRepo interface {
	Create(ctx context.Context, s domain.CheckoutSession) (*domain.CheckoutSession, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
	Update(ctx context.Context, s domain.CheckoutSession) error
	Complete(ctx context.Context, id string) error
}

type cartReader interface {
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type orderWriter interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Order, error)
}

type couponValidator interface {
	Validate(ctx context.Context, code string, subtotalCents int64) (*domain.Coupon, int64, error)
}

type rateResolver interface {
	Resolve(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

type publisher interface {
	Publish(ctx context.Context, e events.Envelope) error
}

// Service wires the wizard's collaborators. The fx resolver and publisher
// are optional; everything else is required.
type Service struct {
	sessions sessionRepo
	carts    cartReader
	orders   orderWriter
	coupons  couponValidator
	gateway  payment.Gateway

	policy          pricing.Policy
	displayCurrency string
	rates           rateResolver

	publisher publisher
	logger    *log.Logger
}

type Config struct {
	Policy          pricing.Policy
	DisplayCurrency string
}

func New(
	sessions sessionRepo,
	carts cartReader,
	orders orderWriter,
	coupons couponValidator,
	gateway payment.Gateway,
	rates rateResolver,
	pub publisher,
	cfg Config,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		sessions:        sessions,
		carts:           carts,
		orders:          orders,
		coupons:         coupons,
		gateway:         gateway,
		policy:          cfg.Policy,
		displayCurrency: cfg.DisplayCurrency,
		rates:           rates,
		publisher:       pub,
		logger:          logger,
	}
}

// Start returns the customer's active session, creating one when none
// exists. The idempotency key is minted here and lives for the whole
// session, so replays of the final submit map onto one order.
func (s *Service) Start(ctx context.Context, customerID string) (*domain.CheckoutSession, error) {
	session, err := s.sessions.GetActiveByCustomer(ctx, customerID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart, err := s.carts.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	return s.sessions.Create(ctx, domain.CheckoutSession{
		CustomerID:     customerID,
		Step:           domain.StepShipping,
		IdempotencyKey: uuid.NewString(),
	})
}

// Get returns the active session.
func (s *Service) Get(ctx context.Context, customerID string) (*domain.CheckoutSession, error) {
	session, err := s.sessions.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return session, nil
}

// Back moves one step backwards. Entered data is never cleared.
func (s *Service) Back(ctx context.Context, customerID string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if session.Step > domain.StepShipping {
		session.Step--
		if err := s.sessions.Update(ctx, *session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

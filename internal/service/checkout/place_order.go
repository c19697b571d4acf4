package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/payment"
)

// PlaceOrder runs the terminal transition: confirm the payment with the
// gateway, then persist the order. The invariant is strict in one
// direction only — an order row exists only if the gateway confirmed the
// payment. The converse failure window (payment confirmed, insert failed)
// is surfaced to the caller with the cart left intact, so a paid cart
// never silently disappears.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, card payment.Card, billingName string) (*domain.Order, error) {
	session, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepPayment {
		return nil, errors.New("checkout is not at the payment step")
	}
	if session.ClientSecret == "" {
		return nil, ErrPaymentNotReady
	}

	// A previous submit may have created the order and then failed on
	// cleanup, leaving the session active over an emptied cart. Hand the
	// existing order back and retry the cleanup instead of re-running
	// the guards below.
	existing, err := s.orders.GetByCheckoutSession(ctx, session.ID)
	if err == nil {
		if err := s.sessions.Complete(ctx, session.ID); err != nil {
			s.logger.Printf("complete session %s on replay of order %s: %v", session.ID, existing.ID, err)
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart, err := s.carts.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	snap, err := s.quote(ctx, customerID, session)
	if err != nil {
		return nil, err
	}
	if s.policy.BelowMinimumCharge(snap.TotalCents) {
		return nil, ErrBelowMinimumCharge
	}
	// The cart changed after the intent was negotiated; confirming now
	// would charge an amount that differs from the recorded total. Drop
	// back to review so a fresh intent gets negotiated.
	if snap.TotalCents != session.IntentAmountCents {
		session.Step = domain.StepReview
		session.ClientSecret = ""
		session.IntentAmountCents = 0
		if err := s.sessions.Update(ctx, *session); err != nil {
			s.logger.Printf("demote stale session %s to review: %v", session.ID, err)
		}
		return nil, ErrStaleIntent
	}

	cardInfo, err := s.gateway.Confirm(ctx, session.ClientSecret, card, billingName)
	if err != nil {
		// Gateway message goes to the customer verbatim; no order exists.
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, domain.OrderItem{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			TotalCents:     l.TotalCents,
		})
	}

	order := domain.Order{
		Number:            "ORD-" + uuid.NewString(),
		CustomerID:        customerID,
		CheckoutSessionID: session.ID,
		Items:             items,
		ShippingAddress:   session.ShippingAddress,
		Payment:           domain.PaymentInfo{Brand: cardInfo.Brand, Last4: cardInfo.Last4},
		Pricing:           snap,
		Coupon:            session.Coupon,
		Status:            domain.OrderPending,
	}

	created, err := s.orders.Create(ctx, order)
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Replay of an already-paid submit: hand back the first order.
		s.logger.Printf("duplicate submit for session %s replayed order %s", session.ID, created.ID)
		return created, nil
	}
	if err != nil {
		// Payment went through but the order did not persist. Keep the
		// cart so the paid items stay visible; the customer sees the
		// error instead of a false success.
		s.logger.Printf("order insert failed after payment for session %s: %v", session.ID, err)
		return nil, err
	}

	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		s.logger.Printf("clear cart %s after order %s: %v", cart.ID, created.ID, err)
	}
	if err := s.sessions.Complete(ctx, session.ID); err != nil {
		s.logger.Printf("complete session %s after order %s: %v", session.ID, created.ID, err)
	}

	if s.publisher != nil {
		e := events.Envelope{
			Type:       events.TypeOrderCreated,
			OrderID:    created.ID,
			CustomerID: customerID,
			Status:     created.Status,
			TotalCents: created.Pricing.TotalCents,
			Currency:   created.Pricing.Currency,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.logger.Printf("publish %s for order %s: %v", e.Type, created.ID, err)
		}
	}

	return created, nil
}

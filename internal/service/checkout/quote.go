package checkout

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// Quote recomputes the pricing snapshot for the customer's cart and
// session. Derived, never stored: every relevant state change re-derives
// it from the cart lines and the session's discount.
func (s *Service) Quote(ctx context.Context, customerID string) (domain.PricingSnapshot, error) {
	session, err := s.Get(ctx, customerID)
	if err != nil {
		return domain.PricingSnapshot{}, err
	}
	return s.quote(ctx, customerID, session)
}

func (s *Service) quote(ctx context.Context, customerID string, session *domain.CheckoutSession) (domain.PricingSnapshot, error) {
	cart, err := s.carts.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		return domain.PricingSnapshot{}, err
	}
	if len(cart.Lines) == 0 {
		return domain.PricingSnapshot{}, ErrEmptyCart
	}

	snap := pricing.Quote(cart.Lines, session.DiscountCents, s.policy)

	if s.displayCurrency != "" && s.displayCurrency != s.policy.BaseCurrency && s.rates != nil {
		rate, err := s.rates.Resolve(ctx, s.policy.BaseCurrency, s.displayCurrency)
		if err != nil {
			return domain.PricingSnapshot{}, err
		}
		snap = pricing.Convert(snap, rate, s.displayCurrency)
	}
	return snap, nil
}

// ApplyCoupon validates a code against the cart subtotal and locks it
// onto the session. A failed validation clears any previously applied
// discount; a successful one cannot be replaced until the session resets.
func (s *Service) ApplyCoupon(ctx context.Context, customerID, code string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	// The intent negotiated at review is for a fixed amount; a coupon
	// applied afterwards would desync the charge from the order total.
	if session.Step == domain.StepPayment {
		return nil, ErrCheckoutLocked
	}
	if session.Coupon != nil {
		return nil, ErrCouponLocked
	}

	cart, err := s.carts.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	subtotal := pricing.Quote(cart.Lines, 0, s.policy).SubtotalCents

	coupon, discount, err := s.coupons.Validate(ctx, code, subtotal)
	if err != nil {
		// A rejected code also voids whatever discount was in place.
		if session.DiscountCents != 0 || session.Coupon != nil {
			session.Coupon = nil
			session.DiscountCents = 0
			if updateErr := s.sessions.Update(ctx, *session); updateErr != nil {
				s.logger.Printf("clear discount on session %s: %v", session.ID, updateErr)
			}
		}
		return nil, err
	}

	session.Coupon = &domain.AppliedCoupon{
		Code:  coupon.Code,
		Type:  coupon.Type,
		Value: coupon.Value,
	}
	session.DiscountCents = discount
	if err := s.sessions.Update(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

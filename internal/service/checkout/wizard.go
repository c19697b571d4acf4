package checkout

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

// AddressInput mirrors the shipping form.
type AddressInput struct {
	RecipientName  string `json:"recipientName"`
	Street         string `json:"street"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	RecipientPhone string `json:"recipientPhone"`
}

// SetShippingAddress stores the shipping form on the session. Partial
// input is persisted as-is; validation happens when advancing, so the
// customer can leave and come back without losing fields.
func (s *Service) SetShippingAddress(ctx context.Context, customerID string, in AddressInput) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	session.ShippingAddress = domain.Address{
		RecipientName:  strings.TrimSpace(in.RecipientName),
		Street:         strings.TrimSpace(in.Street),
		City:           strings.TrimSpace(in.City),
		PostalCode:     strings.TrimSpace(in.PostalCode),
		Country:        strings.TrimSpace(in.Country),
		RecipientPhone: strings.TrimSpace(in.RecipientPhone),
	}
	if err := s.sessions.Update(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// UseSavedAddress copies a saved address over the shipping form. The copy
// overwrites exactly the shipping fields, which also voids any validation
// errors previously reported for them.
func (s *Service) UseSavedAddress(ctx context.Context, customer *domain.Customer, addressID string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	var saved *domain.Address
	for i := range customer.Addresses {
		if customer.Addresses[i].ID == addressID {
			saved = &customer.Addresses[i]
			break
		}
	}
	if saved == nil {
		return nil, errors.New("saved address not found")
	}
	addr := *saved
	addr.ID = ""
	session.ShippingAddress = addr
	if err := s.sessions.Update(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// Advance moves the wizard one step forward, running the step's guard:
//
//	shipping -> review: every required shipping field non-empty
//	review -> payment:  total at or above the processor minimum, and a
//	                    payment intent successfully negotiated
//
// The payment step is terminal for Advance; submission goes through
// PlaceOrder.
func (s *Service) Advance(ctx context.Context, customerID string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepShipping:
		if errs := validateShipping(session.ShippingAddress); len(errs) > 0 {
			return nil, errs
		}
		session.Step = domain.StepReview

	case domain.StepReview:
		snap, err := s.quote(ctx, customerID, session)
		if err != nil {
			return nil, err
		}
		if s.policy.BelowMinimumCharge(snap.TotalCents) {
			return nil, ErrBelowMinimumCharge
		}
		intent, err := s.gateway.CreateIntent(ctx, snap.TotalCents, snap.Currency)
		if err != nil {
			return nil, err
		}
		session.ClientSecret = intent.ClientSecret
		session.IntentAmountCents = snap.TotalCents
		session.Step = domain.StepPayment

	default:
		return nil, errors.New("already at the payment step")
	}

	if err := s.sessions.Update(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

func validateShipping(a domain.Address) FieldErrors {
	errs := FieldErrors{}
	check := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = "required"
		}
	}
	check("recipientName", a.RecipientName)
	check("street", a.Street)
	check("city", a.City)
	check("postalCode", a.PostalCode)
	check("country", a.Country)
	check("recipientPhone", a.RecipientPhone)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

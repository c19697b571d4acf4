// Package coupon validates discount codes and resolves them into discount
// amounts. Clamping of over-large discounts is deliberately not done here;
// the pricing total clamps at zero.
package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	couponrepo "storefront/internal/repository/coupon"
)

var (
	// ErrEmptyCode is the local validation failure for a blank code; no
	// repository lookup happens in that case.
	ErrEmptyCode = errors.New("coupon code required")
	// ErrInvalidCoupon covers unknown and expired codes.
	ErrInvalidCoupon = errors.New("invalid coupon code")
)

type Service struct {
	repo couponrepo.Repository
	now  func() time.Time
}

func New(repo couponrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Validate resolves a code into the coupon rule and the discount amount it
// yields on the given subtotal. Percentage coupons discount
// subtotal*value/100; fixed coupons discount their value regardless of
// subtotal.
func (s *Service) Validate(ctx context.Context, code string, subtotalCents int64) (*domain.Coupon, int64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, 0, ErrEmptyCode
	}

	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, ErrInvalidCoupon
		}
		return nil, 0, err
	}
	if c.ExpiresAt != nil && s.now().After(*c.ExpiresAt) {
		return nil, 0, ErrInvalidCoupon
	}

	return c, DiscountFor(c.Type, c.Value, subtotalCents), nil
}

// DiscountFor computes the discount a coupon rule yields on a subtotal.
func DiscountFor(couponType string, value, subtotalCents int64) int64 {
	switch couponType {
	case domain.DiscountPercentage:
		return subtotalCents * value / 100
	case domain.DiscountFixed:
		return value
	default:
		return 0
	}
}

// Package fx resolves the exchange rate used to show checkout totals in a
// display currency. The rate is resolved once per checkout session and
// cached, so all monetary displays within a session derive from the same
// rate.
package fx

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrCacheMiss is returned by a RateCache when no rate is stored for the
// currency pair.
var ErrCacheMiss = errors.New("fx: cache miss")

// RateSource produces the current rate quoting `quote` units per `base`
// unit.
type RateSource interface {
	Rate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

// RateCache stores resolved rates keyed by currency pair.
type RateCache interface {
	Get(ctx context.Context, base, quote string) (decimal.Decimal, error)
	Set(ctx context.Context, base, quote string, rate decimal.Decimal) error
}

// StaticSource serves one configured rate for a single currency pair. It
// backs deployments where the rate is operator-managed rather than fetched
// from a market feed.
type StaticSource struct {
	Base  string
	Quote string
	Value decimal.Decimal
}

func (s StaticSource) Rate(_ context.Context, base, quote string) (decimal.Decimal, error) {
	if base != s.Base || quote != s.Quote {
		return decimal.Decimal{}, errors.New("fx: no rate configured for " + base + "/" + quote)
	}
	return s.Value, nil
}

// Resolver reads through the cache to the source.
type Resolver struct {
	source RateSource
	cache  RateCache
}

func NewResolver(source RateSource, cache RateCache) *Resolver {
	return &Resolver{source: source, cache: cache}
}

// Resolve returns the cached rate when present, otherwise asks the source
// and stores the result. A cache write failure does not fail the resolve.
// A nil receiver resolves nothing; callers may pass an unconfigured
// resolver through an interface.
func (r *Resolver) Resolve(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if r == nil {
		return decimal.Decimal{}, errors.New("fx: no resolver configured")
	}
	if rate, err := r.cache.Get(ctx, base, quote); err == nil {
		return rate, nil
	}
	rate, err := r.source.Rate(ctx, base, quote)
	if err != nil {
		return decimal.Decimal{}, err
	}
	_ = r.cache.Set(ctx, base, quote, rate)
	return rate, nil
}

package fx

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// MemoryCache is the in-process fallback used when redis is not
// configured.
type MemoryCache struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{rates: make(map[string]decimal.Decimal)}
}

func (m *MemoryCache) Get(_ context.Context, base, quote string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rate, ok := m.rates[rateKey(base, quote)]
	if !ok {
		return decimal.Decimal{}, ErrCacheMiss
	}
	return rate, nil
}

func (m *MemoryCache) Set(_ context.Context, base, quote string, rate decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rateKey(base, quote)] = rate
	return nil
}

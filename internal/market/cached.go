package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
)

// CachedProvider wraps a market provider with a fixed-TTL cache,
// keyed by symbol and requested window.
type CachedProvider struct {
	provider Provider
	ttl      time.Duration

	mu      sync.Mutex
	cache   map[string]core.PriceSeries
	cacheAt map[string]time.Time
}

// NewCachedProvider creates a cached market provider.
func NewCachedProvider(provider Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		ttl:      ttl,
		cache:    make(map[string]core.PriceSeries),
		cacheAt:  make(map[string]time.Time),
	}
}

func (p *CachedProvider) Name() string {
	return p.provider.Name()
}

// FetchDaily returns a cached series or fetches from the underlying provider.
func (p *CachedProvider) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (core.PriceSeries, error) {
	key := fmt.Sprintf("%s|%s|%s", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	return p.fetch(key, func() (core.PriceSeries, error) {
		return p.provider.FetchDaily(ctx, symbol, start, end)
	})
}

// FetchRecent returns a cached series or fetches from the underlying provider.
func (p *CachedProvider) FetchRecent(ctx context.Context, symbol string, days int) (core.PriceSeries, error) {
	key := fmt.Sprintf("%s|recent|%d", symbol, days)
	return p.fetch(key, func() (core.PriceSeries, error) {
		return p.provider.FetchRecent(ctx, symbol, days)
	})
}

func (p *CachedProvider) fetch(key string, load func() (core.PriceSeries, error)) (core.PriceSeries, error) {
	p.mu.Lock()
	if cached, ok := p.cache[key]; ok && time.Since(p.cacheAt[key]) < p.ttl {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	series, err := load()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = series
	p.cacheAt[key] = time.Now()
	p.mu.Unlock()

	return series, nil
}

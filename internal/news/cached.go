package news

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
)

// CachedProvider wraps a news provider with a fixed-TTL cache.
// Used by the serve mode so repeated dashboard requests for the same
// query do not hammer the news API.
type CachedProvider struct {
	provider Provider
	ttl      time.Duration

	mu      sync.Mutex
	cache   map[string][]core.Headline
	cacheAt map[string]time.Time
}

// NewCachedProvider creates a cached news provider.
func NewCachedProvider(provider Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		ttl:      ttl,
		cache:    make(map[string][]core.Headline),
		cacheAt:  make(map[string]time.Time),
	}
}

func (p *CachedProvider) Name() string {
	return p.provider.Name()
}

// FetchHeadlines returns cached headlines or fetches from the underlying
// provider. Errors are not cached.
func (p *CachedProvider) FetchHeadlines(ctx context.Context, query string, max int) ([]core.Headline, error) {
	key := fmt.Sprintf("%s|%d", query, max)

	p.mu.Lock()
	if cached, ok := p.cache[key]; ok && time.Since(p.cacheAt[key]) < p.ttl {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	headlines, err := p.provider.FetchHeadlines(ctx, query, max)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = headlines
	p.cacheAt[key] = time.Now()
	p.mu.Unlock()

	return headlines, nil
}

package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
)

type countingProvider struct {
	calls     int
	headlines []core.Headline
	err       error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) FetchHeadlines(ctx context.Context, query string, max int) ([]core.Headline, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.headlines, nil
}

func TestCachedProvider_ServesFromCache(t *testing.T) {
	underlying := &countingProvider{
		headlines: []core.Headline{{Title: "Stocks rise", Source: "Reuters"}},
	}
	cached := NewCachedProvider(underlying, time.Minute)
	ctx := context.Background()

	first, err := cached.FetchHeadlines(ctx, "stock market", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.FetchHeadlines(ctx, "stock market", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if underlying.calls != 1 {
		t.Errorf("expected 1 underlying call, got %d", underlying.calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Error("cached result should match original")
	}
}

func TestCachedProvider_KeysByQueryAndMax(t *testing.T) {
	underlying := &countingProvider{}
	cached := NewCachedProvider(underlying, time.Minute)
	ctx := context.Background()

	cached.FetchHeadlines(ctx, "AAPL", 5)
	cached.FetchHeadlines(ctx, "AAPL", 10)
	cached.FetchHeadlines(ctx, "MSFT", 5)

	if underlying.calls != 3 {
		t.Errorf("expected 3 underlying calls for distinct keys, got %d", underlying.calls)
	}
}

func TestCachedProvider_ExpiredEntryRefetches(t *testing.T) {
	underlying := &countingProvider{}
	cached := NewCachedProvider(underlying, time.Nanosecond)
	ctx := context.Background()

	cached.FetchHeadlines(ctx, "stock market", 5)
	time.Sleep(time.Millisecond)
	cached.FetchHeadlines(ctx, "stock market", 5)

	if underlying.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", underlying.calls)
	}
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	underlying := &countingProvider{err: errors.New("boom")}
	cached := NewCachedProvider(underlying, time.Minute)
	ctx := context.Background()

	if _, err := cached.FetchHeadlines(ctx, "stock market", 5); err == nil {
		t.Fatal("expected error")
	}
	if _, err := cached.FetchHeadlines(ctx, "stock market", 5); err == nil {
		t.Fatal("expected error")
	}

	if underlying.calls != 2 {
		t.Errorf("errors should not be cached, got %d calls", underlying.calls)
	}
}

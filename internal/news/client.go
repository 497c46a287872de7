package news

import (
	"context"

	"github.com/newthinker/marketbrief/internal/core"
)

// DefaultMaxHeadlines bounds a fetch when the caller passes no limit.
const DefaultMaxHeadlines = 5

// Provider defines the interface for headline sources
type Provider interface {
	// Metadata
	Name() string

	// FetchHeadlines returns up to max recent headlines matching the query,
	// newest first. A query with no matches yields an empty, non-nil slice.
	FetchHeadlines(ctx context.Context, query string, max int) ([]core.Headline, error)
}

// Config holds news provider configuration
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
}

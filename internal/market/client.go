package market

import (
	"context"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
)

// Provider defines the interface for daily close-price sources
type Provider interface {
	// Metadata
	Name() string

	// FetchDaily returns daily closes for the symbol inside [start, end],
	// ascending by date. A window with no trading days yields an empty
	// series, not an error.
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) (core.PriceSeries, error)

	// FetchRecent is the day-count window variant: the last `days`
	// calendar days ending now. Consumed identically to FetchDaily.
	FetchRecent(ctx context.Context, symbol string, days int) (core.PriceSeries, error)
}

// Config holds market provider configuration. Adjusted selects
// split/dividend-adjusted closes; raw closes are the default.
type Config struct {
	BaseURL  string
	Adjusted bool
}

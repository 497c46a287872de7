package core

import (
	"fmt"
	"strings"
	"time"
)

// Headline represents a single news headline
type Headline struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"` // zero when the feed omits a timestamp
}

// IsValid checks if the headline has required fields
func (h Headline) IsValid() bool {
	return h.Title != ""
}

// PricePoint is one daily closing price
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a sequence of daily closes, ascending by date,
// with no duplicate dates
type PriceSeries []PricePoint

// Empty reports whether the series has no data points.
func (s PriceSeries) Empty() bool {
	return len(s) == 0
}

// Latest returns the most recent point. Only valid on a non-empty series.
func (s PriceSeries) Latest() PricePoint {
	return s[len(s)-1]
}

// Trend is a coarse directional classification over a window
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Report is the derived numeric summary of a price series.
// Computed once per request, never mutated after construction.
type Report struct {
	Ticker          string   `json:"ticker"`
	LatestClose     float64  `json:"latest_close"`
	PctChangeDay    float64  `json:"pct_change_day"`
	PctChangePeriod float64  `json:"pct_change_period"`
	Trend           Trend    `json:"trend"`
	HistoryLines    []string `json:"history_lines,omitempty"`
	NoData          bool     `json:"no_data,omitempty"`
}

// Text renders the compact block embedded in the prompt and printed by the CLI.
func (r Report) Text() string {
	if r.NoData {
		return fmt.Sprintf("No stock data available for %s.", r.Ticker)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("TICKER: %s\n", r.Ticker))
	sb.WriteString(fmt.Sprintf("Latest close: $%.2f\n", r.LatestClose))
	sb.WriteString(fmt.Sprintf("Change vs prior day: %.2f%%\n", r.PctChangeDay))
	sb.WriteString(fmt.Sprintf("Change over period: %.2f%% (%s)\n", r.PctChangePeriod, r.Trend))
	sb.WriteString("Recent closes:\n")
	sb.WriteString(strings.Join(r.HistoryLines, "\n"))
	return sb.String()
}

// Brief is the result of one pipeline run
type Brief struct {
	ID          string     `json:"id"`
	Ticker      string     `json:"ticker"`
	Query       string     `json:"query"`
	Headlines   []Headline `json:"headlines"`
	Report      Report     `json:"report"`
	PromptChars int        `json:"prompt_chars"`
	Summary     string     `json:"summary"`
	Notes       []string   `json:"notes,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
}

package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
	"github.com/newthinker/marketbrief/internal/market"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// validSymbol matches stock symbols like AAPL, MSFT, 600519.SH, 0700.HK
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateSymbol checks if a symbol has valid format
func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 20 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Yahoo implements the Yahoo Finance chart client
type Yahoo struct {
	baseURL  string
	adjusted bool
	client   *http.Client
}

// New creates a new Yahoo client
func New(cfg market.Config) *Yahoo {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Yahoo{
		baseURL:  baseURL,
		adjusted: cfg.Adjusted,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// toYahooSymbol converts internal symbol format to Yahoo format
func (y *Yahoo) toYahooSymbol(symbol string) string {
	// Shanghai stocks: 600519.SH -> 600519.SS
	if strings.HasSuffix(symbol, ".SH") {
		return strings.TrimSuffix(symbol, ".SH") + ".SS"
	}
	return symbol
}

// FetchDaily fetches daily closing prices inside [start, end].
func (y *Yahoo) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (core.PriceSeries, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, err)
	}
	yahooSymbol := y.toYahooSymbol(symbol)

	url := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d&events=history",
		y.baseURL, yahooSymbol, start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrTransportFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.WrapError(core.ErrMalformedResponse, err)
	}

	if result.Chart.Error != nil {
		return nil, core.WrapError(core.ErrTransportFailed,
			fmt.Errorf("yahoo error: %s", result.Chart.Error.Description))
	}

	if len(result.Chart.Result) == 0 {
		// Provider knows the symbol but has nothing in the window
		return core.PriceSeries{}, nil
	}

	// Select the requested symbol's result by meta.symbol, never by
	// position: grouped responses can carry more than one symbol.
	r, ok := selectResult(result.Chart.Result, yahooSymbol)
	if !ok {
		return nil, core.WrapError(core.ErrMalformedResponse,
			fmt.Errorf("response does not contain symbol %s", yahooSymbol))
	}

	return y.toSeries(symbol, r)
}

// FetchRecent fetches the last `days` calendar days of daily closes.
func (y *Yahoo) FetchRecent(ctx context.Context, symbol string, days int) (core.PriceSeries, error) {
	if days <= 0 {
		days = 5
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return y.FetchDaily(ctx, symbol, start, end)
}

// selectResult finds the chart result whose meta matches the requested symbol.
func selectResult(results []chartResult, symbol string) (chartResult, bool) {
	for _, r := range results {
		if strings.EqualFold(r.Meta.Symbol, symbol) {
			return r, true
		}
	}
	return chartResult{}, false
}

// toSeries converts a chart result to an ascending, duplicate-free series.
func (y *Yahoo) toSeries(symbol string, r chartResult) (core.PriceSeries, error) {
	if len(r.Timestamp) == 0 {
		return core.PriceSeries{}, nil
	}
	if len(r.Indicators.Quote) == 0 {
		return nil, core.WrapError(core.ErrMalformedResponse,
			fmt.Errorf("no quote indicators for %s", symbol))
	}

	closes := r.Indicators.Quote[0].Close
	if y.adjusted && len(r.Indicators.Adjclose) > 0 {
		closes = r.Indicators.Adjclose[0].Adjclose
	}
	if len(closes) < len(r.Timestamp) {
		return nil, core.WrapError(core.ErrMalformedResponse,
			fmt.Errorf("close column shorter than timestamps for %s", symbol))
	}

	series := make(core.PriceSeries, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if closes[i] == nil {
			continue // Skip missing data
		}
		date := time.Unix(int64(ts), 0).UTC().Truncate(24 * time.Hour)
		// Duplicate dates collapse to the last value
		if len(series) > 0 && series[len(series)-1].Date.Equal(date) {
			series[len(series)-1].Close = *closes[i]
			continue
		}
		series = append(series, core.PricePoint{
			Date:  date,
			Close: *closes[i],
		})
	}

	return series, nil
}

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol string `json:"symbol"`
}

type indicators struct {
	Quote    []quoteIndicator    `json:"quote"`
	Adjclose []adjcloseIndicator `json:"adjclose"`
}

type quoteIndicator struct {
	Close []*float64 `json:"close"`
}

type adjcloseIndicator struct {
	Adjclose []*float64 `json:"adjclose"`
}

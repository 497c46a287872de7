package report

import (
	"fmt"

	"github.com/newthinker/marketbrief/internal/core"
)

// Build derives the numeric summary for a price series. Pure: the same
// series always yields the same report.
//
// Percentage changes guard against a zero divisor by reporting 0.0
// instead of failing; a one-point series has no prior close, so both
// changes are 0.0 and the trend is flat.
func Build(series core.PriceSeries, ticker string) core.Report {
	if series.Empty() {
		return core.Report{Ticker: ticker, NoData: true, Trend: core.TrendFlat}
	}

	latest := series.Latest().Close
	prev := latest
	if len(series) >= 2 {
		prev = series[len(series)-2].Close
	}

	pctDay := 0.0
	if len(series) >= 2 && prev != 0 {
		pctDay = (latest - prev) / prev * 100
	}

	first := series[0].Close
	pctPeriod := 0.0
	if len(series) >= 2 && first != 0 {
		pctPeriod = (latest - first) / first * 100
	}

	return core.Report{
		Ticker:          ticker,
		LatestClose:     latest,
		PctChangeDay:    pctDay,
		PctChangePeriod: pctPeriod,
		Trend:           classifyTrend(pctPeriod),
		HistoryLines:    historyLines(series),
	}
}

// classifyTrend maps a period change to a direction. Exactly 0.0 is flat.
func classifyTrend(pctPeriod float64) core.Trend {
	switch {
	case pctPeriod > 0:
		return core.TrendUp
	case pctPeriod < 0:
		return core.TrendDown
	default:
		return core.TrendFlat
	}
}

// historyLines renders one line per point, in series order.
func historyLines(series core.PriceSeries) []string {
	lines := make([]string, len(series))
	for i, p := range series {
		lines[i] = fmt.Sprintf("%s: $%.2f", p.Date.Format("2006-01-02"), p.Close)
	}
	return lines
}

package report

import (
	"testing"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
	"github.com/stretchr/testify/assert"
)

func seriesOf(closes ...float64) core.PriceSeries {
	base := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	s := make(core.PriceSeries, len(closes))
	for i, c := range closes {
		s[i] = core.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return s
}

func TestBuild_SinglePoint(t *testing.T) {
	r := Build(seriesOf(100), "AAPL")

	assert.Equal(t, 100.0, r.LatestClose)
	assert.Equal(t, 0.0, r.PctChangeDay)
	assert.Equal(t, 0.0, r.PctChangePeriod)
	assert.Equal(t, core.TrendFlat, r.Trend)
	assert.False(t, r.NoData)
}

func TestBuild_Up(t *testing.T) {
	r := Build(seriesOf(100, 110), "AAPL")

	assert.InDelta(t, 10.0, r.PctChangeDay, 1e-9)
	assert.InDelta(t, 10.0, r.PctChangePeriod, 1e-9)
	assert.Equal(t, core.TrendUp, r.Trend)
}

func TestBuild_Down(t *testing.T) {
	r := Build(seriesOf(100, 90), "AAPL")

	assert.InDelta(t, -10.0, r.PctChangeDay, 1e-9)
	assert.Equal(t, core.TrendDown, r.Trend)
}

func TestBuild_Flat(t *testing.T) {
	r := Build(seriesOf(100, 100), "AAPL")

	assert.Equal(t, 0.0, r.PctChangePeriod)
	assert.Equal(t, core.TrendFlat, r.Trend)
}

func TestBuild_MultiDay(t *testing.T) {
	// Day change uses the last two points, period change the endpoints
	r := Build(seriesOf(100, 120, 110), "AAPL")

	assert.InDelta(t, -8.333333, r.PctChangeDay, 1e-5)
	assert.InDelta(t, 10.0, r.PctChangePeriod, 1e-9)
	assert.Equal(t, core.TrendUp, r.Trend)
}

func TestBuild_ZeroPrevClose(t *testing.T) {
	// Division-by-zero guard: reported as 0.0, never a panic
	r := Build(seriesOf(0, 110), "AAPL")

	assert.Equal(t, 0.0, r.PctChangeDay)
	assert.Equal(t, 0.0, r.PctChangePeriod)
	assert.Equal(t, core.TrendFlat, r.Trend)
}

func TestBuild_EmptySeries(t *testing.T) {
	r := Build(core.PriceSeries{}, "AAPL")

	assert.True(t, r.NoData)
	assert.Equal(t, "No stock data available for AAPL.", r.Text())
}

func TestBuild_HistoryLines(t *testing.T) {
	r := Build(seriesOf(230.1, 234.5), "AAPL")

	assert.Equal(t, []string{
		"2026-08-24: $230.10",
		"2026-08-25: $234.50",
	}, r.HistoryLines)
}

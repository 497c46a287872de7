package core

import (
	"strings"
	"testing"
	"time"
)

func TestHeadline_IsValid(t *testing.T) {
	h := Headline{
		Title:       "Apple shares climb after earnings",
		Source:      "Reuters",
		PublishedAt: time.Now(),
	}

	if !h.IsValid() {
		t.Error("expected valid headline")
	}

	invalid := Headline{Source: "Reuters"}
	if invalid.IsValid() {
		t.Error("expected invalid headline")
	}
}

func TestTrend_Constants(t *testing.T) {
	trends := []Trend{TrendUp, TrendDown, TrendFlat}
	expected := []string{"up", "down", "flat"}

	for i, tr := range trends {
		if string(tr) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], tr)
		}
	}
}

func TestPriceSeries_Empty(t *testing.T) {
	var s PriceSeries
	if !s.Empty() {
		t.Error("nil series should be empty")
	}

	s = PriceSeries{{Date: time.Now(), Close: 100}}
	if s.Empty() {
		t.Error("non-empty series reported empty")
	}
}

func TestPriceSeries_Latest(t *testing.T) {
	s := PriceSeries{
		{Date: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Close: 110},
	}
	if s.Latest().Close != 110 {
		t.Errorf("expected latest close 110, got %f", s.Latest().Close)
	}
}

func TestReport_Text(t *testing.T) {
	r := Report{
		Ticker:          "AAPL",
		LatestClose:     234.5,
		PctChangeDay:    1.25,
		PctChangePeriod: 4.5,
		Trend:           TrendUp,
		HistoryLines:    []string{"2026-08-24: $231.60", "2026-08-25: $234.50"},
	}

	text := r.Text()
	for _, want := range []string{
		"TICKER: AAPL",
		"Latest close: $234.50",
		"Change vs prior day: 1.25%",
		"Change over period: 4.50% (up)",
		"2026-08-24: $231.60",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report text missing %q:\n%s", want, text)
		}
	}
}

func TestReport_Text_NoData(t *testing.T) {
	r := Report{Ticker: "AAPL", NoData: true}
	if r.Text() != "No stock data available for AAPL." {
		t.Errorf("unexpected no-data text: %q", r.Text())
	}
}

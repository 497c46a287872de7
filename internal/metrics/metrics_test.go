package metrics

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordRequest_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			reg := NewRegistry()
			reg.RecordRequest("GET", "/test", tt.status, 0.01)

			mfs, err := reg.Gather()
			if err != nil {
				t.Fatalf("gather failed: %v", err)
			}

			found := false
			for _, mf := range mfs {
				if mf.GetName() == "http_requests_total" {
					for _, m := range mf.GetMetric() {
						for _, label := range m.GetLabel() {
							if label.GetName() == "status" && label.GetValue() == tt.expected {
								found = true
							}
						}
					}
				}
			}
			if !found {
				t.Errorf("expected status label %s", tt.expected)
			}
		})
	}
}

func TestRegistry_RecordBrief(t *testing.T) {
	reg := NewRegistry()

	reg.RecordBrief("ok", 1.2)
	reg.RecordBrief("degraded", 0.8)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "marketbrief_briefs_generated_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Errorf("expected 2 status series, got %d", len(mf.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("expected marketbrief_briefs_generated_total metric")
	}
}

func TestRegistry_RecordLLMTokens(t *testing.T) {
	reg := NewRegistry()

	reg.RecordLLMTokens(120, 40)
	reg.RecordLLMTokens(80, 20)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range mfs {
		if mf.GetName() == "marketbrief_llm_tokens_total" {
			for _, m := range mf.GetMetric() {
				for _, label := range m.GetLabel() {
					if label.GetValue() == "input" && m.GetCounter().GetValue() != 200 {
						t.Errorf("expected 200 input tokens, got %f", m.GetCounter().GetValue())
					}
					if label.GetValue() == "output" && m.GetCounter().GetValue() != 60 {
						t.Errorf("expected 60 output tokens, got %f", m.GetCounter().GetValue())
					}
				}
			}
			return
		}
	}
	t.Error("expected marketbrief_llm_tokens_total metric")
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var reg *Registry

	// None of these may panic
	reg.RecordRequest("GET", "/test", 200, 0.01)
	reg.RecordBrief("ok", 1.0)
	reg.RecordProviderRequest("yahoo", "ok")
	reg.RecordLLMTokens(10, 5)
	reg.RecordArchive("ok")
	reg.InFlightInc()
	reg.InFlightDec()
}

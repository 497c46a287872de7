package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics. A nil *Registry is valid and
// records nothing, so the CLI mode can run without metrics plumbing.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	briefsGenerated  *prometheus.CounterVec
	briefDuration    prometheus.Histogram
	providerRequests *prometheus.CounterVec
	llmTokens        *prometheus.CounterVec
	briefsArchived   *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.briefsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketbrief_briefs_generated_total",
			Help: "Total number of briefs generated",
		},
		[]string{"status"},
	)
	r.briefDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marketbrief_brief_duration_seconds",
			Help:    "Brief pipeline duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)
	r.providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketbrief_provider_requests_total",
			Help: "Total number of outbound provider requests",
		},
		[]string{"provider", "status"},
	)
	r.llmTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketbrief_llm_tokens_total",
			Help: "Total LLM tokens consumed",
		},
		[]string{"direction"},
	)
	r.briefsArchived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketbrief_briefs_archived_total",
			Help: "Total number of briefs written to the archive",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.briefsGenerated)
	reg.MustRegister(r.briefDuration)
	reg.MustRegister(r.providerRequests)
	reg.MustRegister(r.llmTokens)
	reg.MustRegister(r.briefsArchived)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	if r == nil {
		return
	}
	r.httpRequestsTotal.WithLabelValues(method, path, statusToString(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// statusToString buckets status codes to keep label cardinality low.
func statusToString(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	if r == nil {
		return
	}
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	if r == nil {
		return
	}
	r.httpRequestsInFlight.Dec()
}

// RecordBrief records a completed pipeline run.
func (r *Registry) RecordBrief(status string, duration float64) {
	if r == nil {
		return
	}
	r.briefsGenerated.WithLabelValues(status).Inc()
	r.briefDuration.Observe(duration)
}

// RecordProviderRequest records one outbound call to a named provider.
func (r *Registry) RecordProviderRequest(provider, status string) {
	if r == nil {
		return
	}
	r.providerRequests.WithLabelValues(provider, status).Inc()
}

// RecordLLMTokens records token consumption for one inference call.
func (r *Registry) RecordLLMTokens(input, output int) {
	if r == nil {
		return
	}
	r.llmTokens.WithLabelValues("input").Add(float64(input))
	r.llmTokens.WithLabelValues("output").Add(float64(output))
}

// RecordArchive records a brief archive attempt.
func (r *Registry) RecordArchive(status string) {
	if r == nil {
		return
	}
	r.briefsArchived.WithLabelValues(status).Inc()
}

// Package metrics provides Prometheus instrumentation for numen endpoints.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hazyhaar/numen/pkg/kit"
	"github.com/hazyhaar/numen/pkg/numerology"
	"github.com/hazyhaar/numen/pkg/wordsearch"
)

// Metrics holds the collectors registered by New.
type Metrics struct {
	// Endpoint calls by endpoint, transport and outcome
	Requests *prometheus.CounterVec

	// Endpoint latency by endpoint
	Duration *prometheus.HistogramVec

	// Candidates examined per word search
	SearchCandidates prometheus.Histogram

	// Words returned per word search
	SearchMatches prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers the numen collectors on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "numen_endpoint_requests_total",
			Help: "Total endpoint calls by endpoint, transport and outcome",
		}, []string{"endpoint", "transport", "outcome"}), // outcome: "ok", "invalid", "error"

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "numen_endpoint_duration_seconds",
			Help:    "Duration of endpoint calls",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"endpoint"}),

		SearchCandidates: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "numen_search_candidates",
			Help:    "Candidates examined per word search",
			Buckets: prometheus.ExponentialBuckets(10, 10, 8),
		}),

		SearchMatches: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "numen_search_matches",
			Help:    "Words returned per word search",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}),

		gatherer: reg,
	}
}

// Instrument counts and times every call of the wrapped endpoint.
func (m *Metrics) Instrument() kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			m.observe(ctx, time.Since(start), err)
			return resp, err
		}
	}
}

func (m *Metrics) observe(ctx context.Context, d time.Duration, err error) {
	if m == nil {
		return
	}
	endpoint := kit.GetEndpoint(ctx)
	m.Requests.WithLabelValues(endpoint, kit.GetTransport(ctx), Outcome(err)).Inc()
	m.Duration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveSearch records the size of a finished word search.
func (m *Metrics) ObserveSearch(res *wordsearch.Result) {
	if m != nil && res != nil {
		m.SearchCandidates.Observe(float64(res.Examined))
		m.SearchMatches.Observe(float64(len(res.Words)))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Outcome classifies an endpoint error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case numerology.IsInvalidInput(err):
		return "invalid"
	default:
		return "error"
	}
}

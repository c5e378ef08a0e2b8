package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SourceFetchesTotal *prometheus.CounterVec
	CacheLookupsTotal  *prometheus.CounterVec
	LookupsTotal       *prometheus.CounterVec
	TableExpiresAt     prometheus.Gauge
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		SourceFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_source_fetches_total",
				Help: "Total number of rate document downloads by outcome",
			},
			[]string{"outcome"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_cache_lookups_total",
				Help: "Total number of rate table cache reads by result",
			},
			[]string{"result"},
		),

		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_lookups_total",
				Help: "Total number of rate lookups by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),

		TableExpiresAt: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_table_expires_at_seconds",
				Help: "Unix time at which the held rate table expires",
			},
		),
	}
}

// The helpers below accept a nil receiver so callers can run without metrics.

func (m *Metrics) SourceFetch(outcome string) {
	if m == nil {
		return
	}
	m.SourceFetchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Lookup(direction, outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(direction, outcome).Inc()
}

func (m *Metrics) TableLoaded(expiresAtUnix int64) {
	if m == nil {
		return
	}
	m.TableExpiresAt.Set(float64(expiresAtUnix))
}

package metrics

import (
	domrepo "Diversonal/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	requestDuration *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	scoreSources    *prometheus.CounterVec
	cacheResults    *prometheus.CounterVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diversonal_asset_data_duration_seconds",
				Help:    "Duration of asset-data requests by asset class",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 45},
			},
			[]string{"asset_class"},
		),
		upstreamErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diversonal_upstream_errors_total",
				Help: "Failed market-data fetches by endpoint",
			},
			[]string{"endpoint"},
		),
		scoreSources: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diversonal_fear_greed_total",
				Help: "Fear & Greed scores by the tier that produced them",
			},
			[]string{"source"},
		),
		cacheResults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diversonal_cache_total",
				Help: "Asset-data cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordRequest records how long an asset-data request took.
func (r *Recorder) RecordRequest(assetClass string, seconds float64) {
	r.requestDuration.WithLabelValues(assetClass).Observe(seconds)
}

// RecordUpstreamError counts a failed fetch against endpoint.
func (r *Recorder) RecordUpstreamError(endpoint string) {
	r.upstreamErrors.WithLabelValues(endpoint).Inc()
}

// RecordScoreSource counts a score by source: composite, rsi or neutral.
func (r *Recorder) RecordScoreSource(source string) {
	r.scoreSources.WithLabelValues(source).Inc()
}

// RecordCache counts a cache lookup: hit, miss or error.
func (r *Recorder) RecordCache(result string) {
	r.cacheResults.WithLabelValues(result).Inc()
}

var _ domrepo.Metrics = (*Recorder)(nil)

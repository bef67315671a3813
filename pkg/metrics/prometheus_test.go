package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordUpstreamError("quote")
	r.RecordUpstreamError("quote")
	r.RecordScoreSource("rsi")
	r.RecordCache("hit")
	r.RecordRequest("Equities", 0.3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.upstreamErrors.WithLabelValues("quote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scoreSources.WithLabelValues("rsi")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheResults.WithLabelValues("hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.requestDuration))
}

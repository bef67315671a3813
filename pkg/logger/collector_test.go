package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func TestCollectorDeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 10,
		Topic:          "diversonal.logs",
		Service:        "diversonal",
		Publisher:      pub,
	})

	fields := map[string]interface{}{"endpoint": "quote"}
	c.AddLog("error", "fmp request rejected", fields, "fmp/client.go:120")
	c.AddLog("error", "fmp request rejected", fields, "fmp/client.go:120")
	c.AddLog("warn", "ignored without IncludeWarnings", nil, "x.go:1")
	assert.Equal(t, 1, c.Pending())

	c.Close()

	require.Len(t, pub.batches, 1)
	require.Len(t, pub.batches[0], 1)
	e := pub.batches[0][0]
	assert.Equal(t, "diversonal.logs", pub.topic)
	assert.Equal(t, "diversonal", e.Service)
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, "error", e.Level)
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:    time.Hour,
		CountThreshold:  2,
		IncludeWarnings: true,
		Publisher:       pub,
	})
	defer c.Close()

	c.AddLog("warn", "a", nil, "x.go:1")
	c.AddLog("error", "b", nil, "x.go:2")

	assert.Equal(t, 0, c.Pending())
	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.batches) == 1 && len(pub.batches[0]) == 2
	}, time.Second, 10*time.Millisecond)
}

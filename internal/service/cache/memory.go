package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

const (
	defaultMaxCost     = 64 << 20
	defaultNumCounters = 1e5
)

// MemoryCache is an in-process BytesCache on ristretto. Cost is the value size in bytes.
type MemoryCache struct {
	c *ristretto.Cache
}

type MemoryOption func(*ristretto.Config)

// WithMaxBytes bounds the total size of cached values.
func WithMaxBytes(n int64) MemoryOption {
	return func(cfg *ristretto.Config) { cfg.MaxCost = n }
}

func NewMemoryCache(opts ...MemoryOption) (*MemoryCache, error) {
	cfg := &ristretto.Config{
		NumCounters: defaultNumCounters,
		MaxCost:     defaultMaxCost,
		BufferItems: 64,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	c, err := ristretto.NewCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	return &MemoryCache{c: c}, nil
}

func (m *MemoryCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

// SetBytes stores value and waits for the write to become visible. A zero ttl never expires.
func (m *MemoryCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.SetWithTTL(key, value, int64(len(value)), ttl)
	m.c.Wait()
	return nil
}

func (m *MemoryCache) Close() error {
	m.c.Close()
	return nil
}

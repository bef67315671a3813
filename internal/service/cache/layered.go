package cache

import (
	"context"
	"time"
)

// DefaultBackfillTTL is how long an L2 hit stays in L1.
const DefaultBackfillTTL = 30 * time.Second

// LayeredCache implements a two-level cache (L1: memory, L2: Redis).
type LayeredCache struct {
	l1          BytesCache
	l2          BytesCache
	backfillTTL time.Duration
}

type LayeredOption func(*LayeredCache)

// WithBackfillTTL sets the L1 lifetime of values read through from L2.
func WithBackfillTTL(d time.Duration) LayeredOption {
	return func(lc *LayeredCache) { lc.backfillTTL = d }
}

func NewLayeredCache(l1, l2 BytesCache, opts ...LayeredOption) *LayeredCache {
	lc := &LayeredCache{l1: l1, l2: l2, backfillTTL: DefaultBackfillTTL}
	for _, opt := range opts {
		opt(lc)
	}
	return lc
}

func (lc *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := lc.l1.GetBytes(ctx, key); err == nil && ok {
		return b, true, nil
	}

	b, ok, err := lc.l2.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = lc.l1.SetBytes(ctx, key, b, lc.backfillTTL)
	return b, true, nil
}

// SetBytes writes through: L2 first, then L1.
func (lc *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := lc.l2.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	l1TTL := ttl
	if l1TTL <= 0 || l1TTL > lc.backfillTTL {
		l1TTL = lc.backfillTTL
	}
	_ = lc.l1.SetBytes(ctx, key, value, l1TTL)
	return nil
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.l1.Close()
	return lc.l2.Close()
}

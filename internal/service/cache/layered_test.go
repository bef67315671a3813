package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{ err error }

func (f failingCache) GetBytes(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingCache) SetBytes(context.Context, string, []byte, time.Duration) error { return f.err }
func (f failingCache) Close() error { return nil }

func newMemory(t *testing.T) *MemoryCache {
	t.Helper()
	m, err := NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestLayeredCacheWritesThrough(t *testing.T) {
	ctx := context.Background()
	l1, l2 := newMemory(t), newMemory(t)
	lc := NewLayeredCache(l1, l2)

	require.NoError(t, lc.SetBytes(ctx, "asset-data:Equities:AAPL", []byte(`{"ticker":"AAPL"}`), time.Minute))

	for _, layer := range []BytesCache{l1, l2} {
		b, ok, err := layer.GetBytes(ctx, "asset-data:Equities:AAPL")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"ticker":"AAPL"}`, string(b))
	}
}

func TestLayeredCacheBackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1, l2 := newMemory(t), newMemory(t)
	lc := NewLayeredCache(l1, l2, WithBackfillTTL(time.Minute))

	require.NoError(t, l2.SetBytes(ctx, "k", []byte("v"), time.Minute))

	b, ok, err := lc.GetBytes(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(b))

	b, ok, _ = l1.GetBytes(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", string(b))
}

func TestLayeredCacheL2Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("redis down")
	lc := NewLayeredCache(newMemory(t), failingCache{err: boom})

	_, ok, err := lc.GetBytes(ctx, "k")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, lc.SetBytes(ctx, "k", []byte("v"), time.Minute), boom)
}

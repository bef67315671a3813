package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// sweepAt is the key count above which idle buckets are dropped.
	sweepAt = 10_000
	idleTTL = 10 * time.Minute
)

type bucket struct {
	lim  *rate.Limiter
	last time.Time
}

// Limiter keeps one token bucket per key (client address).
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*bucket
	limit rate.Limit
	burst int
	now   func() time.Time
}

// New creates a limiter refilling rps tokens per second up to burst. rps <= 0 disables limiting.
func New(rps float64, burst int) *Limiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{m: make(map[string]*bucket), limit: limit, burst: burst, now: time.Now}
}

// Enabled reports whether requests can ever be rejected.
func (l *Limiter) Enabled() bool {
	return l.limit != rate.Inf
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}
	now := l.now()

	l.mu.Lock()
	b, ok := l.m[key]
	if !ok {
		if len(l.m) >= sweepAt {
			l.sweep(now)
		}
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.m[key] = b
	}
	b.last = now
	l.mu.Unlock()

	return b.lim.AllowN(now, 1)
}

func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.m {
		if now.Sub(b.last) > idleTTL {
			delete(l.m, k)
		}
	}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

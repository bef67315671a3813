package aggregator

import (
	"context"
	"sync"

	domsvc "Diversonal/internal/domain/service"
	applogger "Diversonal/pkg/logger"
)

const (
	DefaultNewsLimit = 10

	rsiPeriod = 14
)

// Aggregator gathers per-asset-class metrics from the market-data provider.
// Every fetch runs concurrently and a failed fetch only leaves its own fields nil.
type Aggregator struct {
	md        domsvc.MarketData
	newsLimit int
	l         *applogger.Logger
}

type Option func(*Aggregator)

func WithNewsLimit(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.newsLimit = n
		}
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(a *Aggregator) { a.l = l }
}

func New(md domsvc.MarketData, opts ...Option) *Aggregator {
	a := &Aggregator{md: md, newsLimit: DefaultNewsLimit, l: applogger.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type fetch struct {
	name string
	run  func(context.Context) (interface{}, error)
}

type item struct {
	name string
	val  interface{}
	err  error
}

// join runs fetches concurrently and waits for all of them. Failed fetches are
// logged and absent from the result.
func (a *Aggregator) join(ctx context.Context, ticker string, fetches ...fetch) map[string]interface{} {
	ch := make(chan item, len(fetches))
	var wg sync.WaitGroup

	for _, f := range fetches {
		wg.Add(1)
		go func(f fetch) {
			defer wg.Done()
			v, err := f.run(ctx)
			ch <- item{f.name, v, err}
		}(f)
	}

	go func() { wg.Wait(); close(ch) }()

	out := make(map[string]interface{}, len(fetches))
	for it := range ch {
		if it.err != nil {
			a.l.Debug("metric fetch failed",
				applogger.String("ticker", ticker),
				applogger.String("metric", it.name),
				applogger.Error(it.err),
			)
			continue
		}
		out[it.name] = it.val
	}
	return out
}

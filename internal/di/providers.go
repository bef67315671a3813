package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Diversonal/internal/domain/repository"
	domsvc "Diversonal/internal/domain/service"
	"Diversonal/internal/handler/api"
	internalrepo "Diversonal/internal/repository"
	"Diversonal/internal/service/cache"
	"Diversonal/internal/service/fmp"
	"Diversonal/internal/service/llm"
	"Diversonal/internal/service/ratelimit"
	"Diversonal/internal/services/aggregator"
	"Diversonal/internal/services/feargreed"
	"Diversonal/internal/usecase"
	pkgch "Diversonal/pkg/clickhouse"
	"Diversonal/pkg/config"
	xhttp "Diversonal/pkg/http"
	pkgkafka "Diversonal/pkg/kafka"
	applogger "Diversonal/pkg/logger"
	"Diversonal/pkg/metrics"
	"Diversonal/pkg/server"
)

// ScoreSinks are the destinations every computed score is recorded to.
type ScoreSinks []repository.ScoreSink

// ProvideKafkaProducer creates a Kafka producer. No brokers means no producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatching(cfg.Kafka.BatchSize, cfg.Kafka.Linger),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger creates the application logger and attaches the error-log collector when enabled.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}

	if cfg.Logging.Collector.Enabled {
		if producer == nil {
			l.Warn("log collector enabled without kafka brokers; collector disabled")
		} else {
			l.AddCollector(&applogger.CollectionConfig{
				TimeInterval:    cfg.Logging.Collector.Interval,
				CountThreshold:  cfg.Logging.Collector.CountThreshold,
				Topic:           cfg.Kafka.LogsTopic,
				Service:         "diversonal",
				IncludeWarnings: cfg.Logging.Collector.IncludeWarnings,
				Publisher:       producer,
			})
		}
	}
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when enabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideScoreSinks builds the enabled score sinks and ensures the ClickHouse schema exists.
func ProvideScoreSinks(
	cfg *config.Config,
	l *applogger.Logger,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
) (ScoreSinks, func(), error) {
	var sinks ScoreSinks

	if chClient != nil {
		store := internalrepo.NewCHScoreStore(chClient, l)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := chClient.InitSchema(ctx, store.Schema()); err != nil {
			return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		sinks = append(sinks, store)
		l.Info("score sink enabled", applogger.String("sink", "clickhouse"), applogger.String("db", chClient.Database()))
	}

	if producer != nil && cfg.Kafka.ScoresTopic != "" {
		sinks = append(sinks, internalrepo.NewKafkaScoreSink(producer, cfg.Kafka.ScoresTopic))
		l.Info("score sink enabled", applogger.String("sink", "kafka"), applogger.String("topic", cfg.Kafka.ScoresTopic))
	}

	cleanup := func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				l.Warn("score sink close error", applogger.Error(err))
			}
		}
	}
	return sinks, cleanup, nil
}

// ProvideCache creates the response cache. A zero TTL disables caching and returns nil.
func ProvideCache(cfg *config.Config) (cache.BytesCache, func(), error) {
	if cfg.AssetData.CacheTTL <= 0 {
		return nil, func() {}, nil
	}

	var (
		c   cache.BytesCache
		err error
	)
	switch cfg.Cache.Backend {
	case "redis":
		c, err = newRedisCache(cfg)
	case "layered":
		c, err = newLayeredCache(cfg)
	default:
		c, err = cache.NewMemoryCache(cache.WithMaxBytes(cfg.Cache.MaxBytes))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cache %s: %w", cfg.Cache.Backend, err)
	}
	return c, func() { _ = c.Close() }, nil
}

func newRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
}

func newLayeredCache(cfg *config.Config) (*cache.LayeredCache, error) {
	l2, err := newRedisCache(cfg)
	if err != nil {
		return nil, err
	}
	l1, err := cache.NewMemoryCache(cache.WithMaxBytes(cfg.Cache.MaxBytes))
	if err != nil {
		_ = l2.Close()
		return nil, err
	}
	return cache.NewLayeredCache(l1, l2), nil
}

// ProvideMarketData creates the FMP fetch gateway.
func ProvideMarketData(cfg *config.Config, l *applogger.Logger, rec *metrics.Recorder) *fmp.Client {
	if cfg.FMP.APIKey == "" {
		l.Warn("FMP_API_KEY not set; market-data fetches will fail and scores fall back")
	}
	return fmp.New(cfg.FMP.APIKey,
		fmp.WithBaseURL(cfg.FMP.BaseURL),
		fmp.WithTimeout(cfg.FMP.Timeout),
		fmp.WithRateLimit(cfg.FMP.RateLimit, cfg.FMP.Burst),
		fmp.WithMetrics(rec),
		fmp.WithLogger(l.With(applogger.String("component", "fmp"))),
	)
}

// ProvideCompleter creates the language-model client. An unconfigured provider yields nil,
// which makes every score a fallback.
func ProvideCompleter(cfg *config.Config, l *applogger.Logger) (domsvc.Completer, error) {
	c, err := llm.New(context.Background(), llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, l.With(applogger.String("component", "llm")))
	if errors.Is(err, llm.ErrNotConfigured) {
		l.Warn("language model not configured; scores use the RSI fallback",
			applogger.String("provider", cfg.LLM.Provider))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	return c, nil
}

// ProvideScorer creates the Fear & Greed scorer.
func ProvideScorer(cfg *config.Config, completer domsvc.Completer, l *applogger.Logger) *feargreed.Scorer {
	return feargreed.NewScorer(completer,
		feargreed.WithTimeout(cfg.LLM.Timeout),
		feargreed.WithLogger(l.With(applogger.String("component", "feargreed"))),
	)
}

// ProvideAggregator creates the metric aggregator.
func ProvideAggregator(cfg *config.Config, md *fmp.Client, l *applogger.Logger) *aggregator.Aggregator {
	return aggregator.New(md,
		aggregator.WithNewsLimit(cfg.AssetData.NewsLimit),
		aggregator.WithLogger(l.With(applogger.String("component", "aggregator"))),
	)
}

// ProvideAssetData creates the asset-class dispatcher.
func ProvideAssetData(
	cfg *config.Config,
	agg *aggregator.Aggregator,
	scorer *feargreed.Scorer,
	c cache.BytesCache,
	sinks ScoreSinks,
	rec *metrics.Recorder,
	l *applogger.Logger,
) *usecase.AssetData {
	return usecase.NewAssetData(agg, scorer,
		usecase.WithCache(c, cfg.AssetData.CacheTTL),
		usecase.WithSinks(sinks...),
		usecase.WithMetrics(rec),
		usecase.WithCashYield(cfg.AssetData.CashYield),
		usecase.WithStrictAssetClass(cfg.AssetData.StrictAssetClass),
		usecase.WithLogger(l.With(applogger.String("component", "asset-data"))),
	)
}

// ProvideRateLimiter creates the per-client limiter for POST /api/asset-data.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.AssetData.RateLimit, cfg.AssetData.RateBurst)
}

// ProvideHandler creates the API handler.
func ProvideHandler(l *applogger.Logger, uc *usecase.AssetData, rl *ratelimit.Limiter) *api.AssetDataHandler {
	return api.NewAssetDataHandler(l.With(applogger.String("component", "api")), uc, rl)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h *api.AssetDataHandler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}

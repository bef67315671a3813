package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Diversonal/internal/domain/models"
	domrepo "Diversonal/internal/domain/repository"
	"Diversonal/internal/service/cache"
	"Diversonal/internal/services/feargreed"
	applogger "Diversonal/pkg/logger"
)

const (
	DefaultCashYield = 4.0

	sinkTimeout = 2 * time.Second
)

// UnsupportedAssetClassError is returned for unknown tags when strict mode is on.
type UnsupportedAssetClassError struct {
	Tag string
}

func (e *UnsupportedAssetClassError) Error() string {
	return "Unsupported assetClass: " + e.Tag
}

// Aggregator gathers metrics and scorer input for one asset.
type Aggregator interface {
	Equities(ctx context.Context, ticker string) (*models.EquityMetrics, feargreed.Input)
	Crypto(ctx context.Context, ticker string) (*models.CryptoMetrics, feargreed.Input)
	Simplified(ctx context.Context, ticker string, ac models.AssetClass) (*models.SimplifiedMetrics, feargreed.Input)
}

// Scorer turns aggregated input into a Fear & Greed reading.
type Scorer interface {
	Score(ctx context.Context, in feargreed.Input) feargreed.Result
}

// AssetData routes an asset-data request to the handler for its asset class.
type AssetData struct {
	agg      Aggregator
	scorer   Scorer
	cache    cache.BytesCache
	cacheTTL time.Duration
	sinks    []domrepo.ScoreSink
	metrics  domrepo.Metrics

	cashYield float64
	strict    bool

	l   *applogger.Logger
	now func() time.Time
}

type AssetDataOption func(*AssetData)

// WithCache caches full responses for ttl. A nil cache or zero ttl disables caching.
func WithCache(c cache.BytesCache, ttl time.Duration) AssetDataOption {
	return func(u *AssetData) {
		u.cache = c
		u.cacheTTL = ttl
	}
}

func WithSinks(sinks ...domrepo.ScoreSink) AssetDataOption {
	return func(u *AssetData) { u.sinks = append(u.sinks, sinks...) }
}

func WithMetrics(m domrepo.Metrics) AssetDataOption {
	return func(u *AssetData) { u.metrics = m }
}

func WithCashYield(y float64) AssetDataOption {
	return func(u *AssetData) { u.cashYield = y }
}

// WithStrictAssetClass rejects unknown asset classes instead of scoring them like bonds.
func WithStrictAssetClass(strict bool) AssetDataOption {
	return func(u *AssetData) { u.strict = strict }
}

func WithLogger(l *applogger.Logger) AssetDataOption {
	return func(u *AssetData) { u.l = l }
}

func NewAssetData(agg Aggregator, scorer Scorer, opts ...AssetDataOption) *AssetData {
	u := &AssetData{
		agg:       agg,
		scorer:    scorer,
		cashYield: DefaultCashYield,
		l:         applogger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Get builds the asset-data response. The response echoes the request's ticker and assetClass.
func (u *AssetData) Get(ctx context.Context, req models.AssetDataRequest) (*models.AssetDataResponse, error) {
	start := u.now()

	ac, known := models.ParseAssetClass(req.AssetClass)
	if !known {
		if u.strict {
			return nil, &UnsupportedAssetClassError{Tag: req.AssetClass}
		}
		u.l.Warn("unknown asset class, scoring without fundamentals",
			applogger.String("ticker", req.Ticker),
			applogger.String("asset_class", req.AssetClass),
		)
	}
	defer func() {
		if u.metrics != nil {
			u.metrics.RecordRequest(ac.String(), u.now().Sub(start).Seconds())
		}
	}()

	if ac == models.AssetClassCash {
		return &models.AssetDataResponse{
			Ticker:     req.Ticker,
			AssetClass: req.AssetClass,
			Metrics:    models.CashMetrics{Yield: u.cashYield},
		}, nil
	}

	key := cacheKey(ac, req.Ticker)
	if resp, ok := u.cached(ctx, key); ok {
		resp.Ticker, resp.AssetClass = req.Ticker, req.AssetClass
		return resp, nil
	}

	var (
		metrics interface{}
		in      feargreed.Input
	)
	switch ac {
	case models.AssetClassEquities:
		metrics, in = u.agg.Equities(ctx, req.Ticker)
	case models.AssetClassCryptocurrencies:
		metrics, in = u.agg.Crypto(ctx, req.Ticker)
	case models.AssetClassBonds, models.AssetClassRealEstate, models.AssetClassCommodities, models.AssetClassOther:
		metrics, in = u.agg.Simplified(ctx, req.Ticker, ac)
	default:
		return nil, fmt.Errorf("asset class %s has no handler", ac)
	}

	res := u.scorer.Score(ctx, in)
	if u.metrics != nil {
		u.metrics.RecordScoreSource(string(res.Source))
	}

	fg := res.FearGreed
	resp := &models.AssetDataResponse{
		Ticker:     req.Ticker,
		AssetClass: req.AssetClass,
		FearGreed:  &fg,
		Metrics:    metrics,
		Headline:   &models.NullableHeadline{Value: res.Headline},
	}

	u.record(ctx, ac, in.Ticker, res)
	u.store(ctx, key, resp)
	return resp, nil
}

func cacheKey(ac models.AssetClass, ticker string) string {
	return "asset-data:" + ac.String() + ":" + strings.ToUpper(strings.TrimSpace(ticker))
}

func (u *AssetData) cacheEnabled() bool {
	return u.cache != nil && u.cacheTTL > 0
}

func (u *AssetData) cached(ctx context.Context, key string) (*models.AssetDataResponse, bool) {
	if !u.cacheEnabled() {
		return nil, false
	}
	b, ok, err := u.cache.GetBytes(ctx, key)
	switch {
	case err != nil:
		u.recordCache("error")
		u.l.Warn("asset-data cache read failed", applogger.String("key", key), applogger.Error(err))
		return nil, false
	case !ok:
		u.recordCache("miss")
		return nil, false
	}

	var resp models.AssetDataResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		u.recordCache("error")
		u.l.Warn("asset-data cache entry corrupt", applogger.String("key", key), applogger.Error(err))
		return nil, false
	}
	// A cached null headline decodes to a nil pointer; scored responses always carry the key.
	if resp.FearGreed != nil && resp.Headline == nil {
		resp.Headline = &models.NullableHeadline{}
	}
	u.recordCache("hit")
	return &resp, true
}

func (u *AssetData) store(ctx context.Context, key string, resp *models.AssetDataResponse) {
	if !u.cacheEnabled() {
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		u.l.Warn("asset-data cache encode failed", applogger.String("key", key), applogger.Error(err))
		return
	}
	if err := u.cache.SetBytes(ctx, key, b, u.cacheTTL); err != nil {
		u.l.Warn("asset-data cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}

func (u *AssetData) recordCache(result string) {
	if u.metrics != nil {
		u.metrics.RecordCache(result)
	}
}

// record hands the score to every sink. Sink failures are logged only.
func (u *AssetData) record(ctx context.Context, ac models.AssetClass, ticker string, res feargreed.Result) {
	if len(u.sinks) == 0 {
		return
	}
	rec := models.ScoreRecord{
		Ticker:     ticker,
		AssetClass: ac.String(),
		Score:      res.FearGreed.Score,
		Label:      res.FearGreed.Label,
		RSI:        res.FearGreed.RSI,
		Source:     res.Source,
		Timestamp:  u.now().UnixMilli(),
	}
	if res.Headline != nil {
		rec.Headline = res.Headline.Title
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()
	for _, s := range u.sinks {
		if err := s.Record(ctx, rec); err != nil {
			u.l.Warn("score sink failed",
				applogger.String("ticker", ticker),
				applogger.String("sink", fmt.Sprintf("%T", s)),
				applogger.Error(err),
			)
		}
	}
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"Diversonal/internal/domain/models"
	"Diversonal/internal/service/cache"
	"Diversonal/internal/services/feargreed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

type fakeAggregator struct {
	mu    sync.Mutex
	calls []string
	rsi   *float64
}

func (f *fakeAggregator) called(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAggregator) Equities(_ context.Context, ticker string) (*models.EquityMetrics, feargreed.Input) {
	f.called("equities")
	return &models.EquityMetrics{RSI: f.rsi}, feargreed.Input{Ticker: ticker, AssetClass: models.AssetClassEquities, RSI: f.rsi}
}

func (f *fakeAggregator) Crypto(_ context.Context, ticker string) (*models.CryptoMetrics, feargreed.Input) {
	f.called("crypto")
	sym := ticker + "USD"
	return &models.CryptoMetrics{Symbol: sym, RSI: f.rsi}, feargreed.Input{Ticker: sym, AssetClass: models.AssetClassCryptocurrencies, RSI: f.rsi}
}

func (f *fakeAggregator) Simplified(_ context.Context, ticker string, ac models.AssetClass) (*models.SimplifiedMetrics, feargreed.Input) {
	f.called("simplified:" + ac.String())
	return &models.SimplifiedMetrics{RSI: f.rsi}, feargreed.Input{Ticker: ticker, AssetClass: ac, RSI: f.rsi}
}

type fakeCompleter struct {
	reply string
	err   error
}

func (f fakeCompleter) Complete(context.Context, string) (string, error) { return f.reply, f.err }

type recordingSink struct {
	recs []models.ScoreRecord
	err  error
}

func (s *recordingSink) Record(_ context.Context, rec models.ScoreRecord) error {
	s.recs = append(s.recs, rec)
	return s.err
}

func (s *recordingSink) Close() error { return nil }

type countingMetrics struct {
	mu       sync.Mutex
	requests map[string]int
	sources  map[string]int
	cache    map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{requests: map[string]int{}, sources: map[string]int{}, cache: map[string]int{}}
}

func (m *countingMetrics) RecordRequest(ac string, _ float64) {
	m.mu.Lock()
	m.requests[ac]++
	m.mu.Unlock()
}
func (m *countingMetrics) RecordUpstreamError(string) {}
func (m *countingMetrics) RecordScoreSource(s string) {
	m.mu.Lock()
	m.sources[s]++
	m.mu.Unlock()
}
func (m *countingMetrics) RecordCache(r string) {
	m.mu.Lock()
	m.cache[r]++
	m.mu.Unlock()
}

func TestGetCash(t *testing.T) {
	agg := &fakeAggregator{}
	u := NewAssetData(agg, feargreed.NewScorer(nil))

	resp, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "USD", AssetClass: "Cash"})
	require.NoError(t, err)
	assert.Empty(t, agg.calls)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticker":"USD","assetClass":"Cash","metrics":{"yield":4}}`, string(b))
}

func TestGetEquitiesComposite(t *testing.T) {
	agg := &fakeAggregator{rsi: f64(72)}
	scorer := feargreed.NewScorer(fakeCompleter{reply: `{"momentumScore":65,"newsScore":80,"fundamentalsScore":50,"headlineNumber":1}`})
	m := newCountingMetrics()
	u := NewAssetData(agg, scorer, WithMetrics(m))

	resp, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "AAPL", AssetClass: "Equities"})
	require.NoError(t, err)

	require.NotNil(t, resp.FearGreed)
	assert.Equal(t, 70, resp.FearGreed.Score)
	assert.Equal(t, models.Greed, resp.FearGreed.Label)
	assert.Equal(t, []string{"equities"}, agg.calls)
	assert.Equal(t, 1, m.sources["composite"])
	assert.Equal(t, 1, m.requests["Equities"])

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Contains(t, body, "headline")
	assert.Nil(t, body["headline"])
}

func TestGetLLMFailureFallsBackToRSI(t *testing.T) {
	agg := &fakeAggregator{rsi: f64(18)}
	u := NewAssetData(agg, feargreed.NewScorer(fakeCompleter{err: errors.New("timeout")}))

	resp, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "AAPL", AssetClass: "Equities"})
	require.NoError(t, err)

	b, err := json.Marshal(resp.FearGreed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":18,"label":"Extreme Fear","rsi":18}`, string(b))
}

func TestGetRouting(t *testing.T) {
	tests := []struct {
		assetClass string
		want       string
	}{
		{"Cryptocurrencies", "crypto"},
		{"Equities", "equities"},
		{"Bonds", "simplified:Bonds"},
		{"Real Estate", "simplified:Real Estate"},
		{"Commodities", "simplified:Commodities"},
		{"Collectibles", "simplified:Other"},
	}
	for _, tt := range tests {
		t.Run(tt.assetClass, func(t *testing.T) {
			agg := &fakeAggregator{}
			u := NewAssetData(agg, feargreed.NewScorer(nil))

			resp, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "X", AssetClass: tt.assetClass})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, agg.calls)
			assert.Equal(t, "X", resp.Ticker)
			assert.Equal(t, tt.assetClass, resp.AssetClass)
			require.NotNil(t, resp.FearGreed)
			assert.Equal(t, 50, resp.FearGreed.Score)
		})
	}
}

func TestGetStrictRejectsUnknownClass(t *testing.T) {
	agg := &fakeAggregator{}
	u := NewAssetData(agg, feargreed.NewScorer(nil), WithStrictAssetClass(true))

	_, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "X", AssetClass: "Collectibles"})
	var ue *UnsupportedAssetClassError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Unsupported assetClass: Collectibles", err.Error())
	assert.Empty(t, agg.calls)
}

func TestGetRecordsToSinks(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("broker down")}
	agg := &fakeAggregator{rsi: f64(33)}
	u := NewAssetData(agg, feargreed.NewScorer(nil), WithSinks(failing, ok))
	u.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	resp, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "eth", AssetClass: "Cryptocurrencies"})
	require.NoError(t, err)
	assert.Equal(t, 33, resp.FearGreed.Score)

	require.Len(t, ok.recs, 1)
	rec := ok.recs[0]
	assert.Equal(t, "ethUSD", rec.Ticker)
	assert.Equal(t, "Cryptocurrencies", rec.AssetClass)
	assert.Equal(t, 33, rec.Score)
	assert.Equal(t, models.Fear, rec.Label)
	assert.Equal(t, models.SourceRSI, rec.Source)
	assert.Equal(t, int64(1_700_000_000_000), rec.Timestamp)
	assert.Len(t, failing.recs, 1)
}

func TestGetCachesResponses(t *testing.T) {
	c, err := cache.NewMemoryCache()
	require.NoError(t, err)
	defer c.Close()

	agg := &fakeAggregator{rsi: f64(64)}
	m := newCountingMetrics()
	u := NewAssetData(agg, feargreed.NewScorer(nil), WithCache(c, time.Minute), WithMetrics(m))

	first, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "tlt", AssetClass: "Bonds"})
	require.NoError(t, err)
	second, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "TLT", AssetClass: "bonds"})
	require.NoError(t, err)

	assert.Len(t, agg.calls, 1)
	assert.Equal(t, 1, m.cache["miss"])
	assert.Equal(t, 1, m.cache["hit"])
	assert.Equal(t, "TLT", second.Ticker)
	assert.Equal(t, "bonds", second.AssetClass)
	assert.Equal(t, first.FearGreed, second.FearGreed)

	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"headline":null`)
}

func TestGetCacheDisabledByDefault(t *testing.T) {
	c, err := cache.NewMemoryCache()
	require.NoError(t, err)
	defer c.Close()

	agg := &fakeAggregator{}
	u := NewAssetData(agg, feargreed.NewScorer(nil), WithCache(c, 0))

	for i := 0; i < 2; i++ {
		_, err := u.Get(context.Background(), models.AssetDataRequest{Ticker: "GLD", AssetClass: "Commodities"})
		require.NoError(t, err)
	}
	assert.Len(t, agg.calls, 2)
}

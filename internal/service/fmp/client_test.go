package fmp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	xhttp "Diversonal/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMetrics struct{ upstream []string }

func (m *countingMetrics) RecordRequest(string, float64) {}
func (m *countingMetrics) RecordUpstreamError(e string) { m.upstream = append(m.upstream, e) }
func (m *countingMetrics) RecordScoreSource(string) {}
func (m *countingMetrics) RecordCache(string) {}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestQuoteSendsKeyAndHeaders(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Equal(t, "diversonal-fmp/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"symbol":"AAPL","price":189.5,"marketCap":2.9e12}]`))
	})

	c := New("secret", WithBaseURL(srv.URL+"/"))
	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, q.Price)
	assert.Equal(t, 189.5, *q.Price)
	assert.Nil(t, q.Volume)
}

func TestIndicatorParams(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/technical-indicators/rsi", r.URL.Path)
		assert.Equal(t, "14", r.URL.Query().Get("periodLength"))
		assert.Equal(t, "1day", r.URL.Query().Get("timeframe"))
		_, _ = w.Write([]byte(`[{"date":"2024-05-01","rsi":61.2},{"date":"2024-04-30","rsi":58}]`))
	})

	rsi, err := New("k", WithBaseURL(srv.URL)).RSI(context.Background(), "MSFT", 14)
	require.NoError(t, err)
	require.NotNil(t, rsi)
	assert.Equal(t, 61.2, *rsi)
}

func TestNewsLimit(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/crypto", r.URL.Path)
		assert.Equal(t, "BTCUSD", r.URL.Query().Get("symbols"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"title":"BTC rallies","site":"x","publishedDate":"2024-05-01 10:00:00","url":"https://x/1"}]`))
	})

	news, err := New("k", WithBaseURL(srv.URL)).CryptoNews(context.Background(), "BTCUSD", 10)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "BTC rallies", news[0].Title)
}

func TestNonSuccessStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"Error Message":"Invalid API KEY"}`))
	})
	m := &countingMetrics{}

	_, err := New("k", WithBaseURL(srv.URL), WithMetrics(m)).RatiosTTM(context.Background(), "AAPL")
	require.Error(t, err)

	var se *xhttp.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, []string{"ratios-ttm"}, m.upstream)
}

func TestEmptyListIsNoData(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := New("k", WithBaseURL(srv.URL)).KeyMetricsTTM(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestMissingAPIKey(t *testing.T) {
	called := false
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := New("", WithBaseURL(srv.URL)).Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called)
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"date":"2024-05-01","sma":100}]`))
	})
	c := New("k", WithBaseURL(srv.URL), WithRateLimit(0.001, 1))

	_, err := c.SMA(context.Background(), "AAPL", 50)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.SMA(ctx, "AAPL", 50)
	assert.Error(t, err)
}

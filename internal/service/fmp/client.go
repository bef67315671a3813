package fmp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Diversonal/internal/domain/models"
	domrepo "Diversonal/internal/domain/repository"
	domsvc "Diversonal/internal/domain/service"
	xhttp "Diversonal/pkg/http"
	applogger "Diversonal/pkg/logger"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the FMP stable API root.
	DefaultBaseURL = "https://financialmodelingprep.com/stable"

	DefaultTimeout = 30 * time.Second

	userAgent = "diversonal-fmp/1.0"
)

var (
	// ErrMissingAPIKey is returned by every fetch while no API key is configured.
	ErrMissingAPIKey = errors.New("fmp: api key not configured")
	// ErrNoData is returned when the provider answers with an empty list.
	ErrNoData = errors.New("fmp: no data")
)

// Client is the market-data fetch gateway.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *xhttp.Client
	limiter *rate.Limiter
	metrics domrepo.Metrics
	l       *applogger.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit caps outbound requests per second. Zero disables the cap.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithMetrics(m domrepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.l = l }
}

// New creates a gateway. An empty apiKey is accepted; each fetch then fails with ErrMissingAPIKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Inf, 0),
		l:       applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = xhttp.NewClient(xhttp.WithTimeout(c.timeout), xhttp.WithUserAgent(userAgent))
	return c
}

// FetchJSON issues a GET for endpoint with params and the API key, decoding the body into dest.
func (c *Client) FetchJSON(ctx context.Context, endpoint string, params url.Values, dest interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("fmp %s: rate limit wait: %w", endpoint, err)
	}

	q := make(url.Values, len(params)+1)
	for k, v := range params {
		q[k] = v
	}
	q.Set("apikey", c.apiKey)

	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/" + strings.TrimLeft(endpoint, "/"),
		Headers: map[string]string{
			"Accept":        "application/json",
			"Cache-Control": "no-store",
		},
		Query: q,
	}, dest)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordUpstreamError(endpoint)
		}
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			c.l.Warn("fmp request rejected",
				applogger.String("endpoint", endpoint),
				applogger.Int("status", se.StatusCode),
			)
		}
		return fmt.Errorf("fmp %s: %w", endpoint, err)
	}
	return nil
}

func symbolParams(key, symbol string) url.Values {
	return url.Values{key: []string{symbol}}
}

func first[T any](endpoint string, xs []T) (*T, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("fmp %s: %w", endpoint, ErrNoData)
	}
	return &xs[0], nil
}

// StockNews returns the latest articles for a stock ticker.
func (c *Client) StockNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	return c.news(ctx, "news/stock", ticker, limit)
}

// CryptoNews returns the latest articles for a crypto pair such as BTCUSD.
func (c *Client) CryptoNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	return c.news(ctx, "news/crypto", symbol, limit)
}

func (c *Client) news(ctx context.Context, endpoint, symbol string, limit int) ([]models.NewsArticle, error) {
	p := symbolParams("symbols", symbol)
	p.Set("limit", strconv.Itoa(limit))
	var out []models.NewsArticle
	if err := c.FetchJSON(ctx, endpoint, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RatiosTTM(ctx context.Context, ticker string) (*models.Ratios, error) {
	var out []models.Ratios
	if err := c.FetchJSON(ctx, "ratios-ttm", symbolParams("symbol", ticker), &out); err != nil {
		return nil, err
	}
	return first("ratios-ttm", out)
}

func (c *Client) KeyMetricsTTM(ctx context.Context, ticker string) (*models.KeyMetrics, error) {
	var out []models.KeyMetrics
	if err := c.FetchJSON(ctx, "key-metrics-ttm", symbolParams("symbol", ticker), &out); err != nil {
		return nil, err
	}
	return first("key-metrics-ttm", out)
}

func (c *Client) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	var out []models.Quote
	if err := c.FetchJSON(ctx, "quote", symbolParams("symbol", ticker), &out); err != nil {
		return nil, err
	}
	return first("quote", out)
}

// PriceChange returns 1D/5D/1M/3M percentage moves.
func (c *Client) PriceChange(ctx context.Context, ticker string) (*models.PriceChange, error) {
	var out []models.PriceChange
	if err := c.FetchJSON(ctx, "stock-price-change", symbolParams("symbol", ticker), &out); err != nil {
		return nil, err
	}
	return first("stock-price-change", out)
}

type rsiPoint struct {
	Date string   `json:"date"`
	RSI  *float64 `json:"rsi"`
}

type smaPoint struct {
	Date string   `json:"date"`
	SMA  *float64 `json:"sma"`
}

func indicatorParams(ticker string, period int) url.Values {
	p := symbolParams("symbol", ticker)
	p.Set("periodLength", strconv.Itoa(period))
	p.Set("timeframe", "1day")
	return p
}

// RSI returns the most recent daily RSI reading for period.
func (c *Client) RSI(ctx context.Context, ticker string, period int) (*float64, error) {
	var out []rsiPoint
	if err := c.FetchJSON(ctx, "technical-indicators/rsi", indicatorParams(ticker, period), &out); err != nil {
		return nil, err
	}
	p, err := first("technical-indicators/rsi", out)
	if err != nil {
		return nil, err
	}
	return p.RSI, nil
}

// SMA returns the most recent daily simple moving average for period.
func (c *Client) SMA(ctx context.Context, ticker string, period int) (*float64, error) {
	var out []smaPoint
	if err := c.FetchJSON(ctx, "technical-indicators/sma", indicatorParams(ticker, period), &out); err != nil {
		return nil, err
	}
	p, err := first("technical-indicators/sma", out)
	if err != nil {
		return nil, err
	}
	return p.SMA, nil
}

// IncomeStatements returns the latest statements, newest first.
func (c *Client) IncomeStatements(ctx context.Context, ticker string, limit int) ([]models.IncomeStatement, error) {
	p := symbolParams("symbol", ticker)
	p.Set("limit", strconv.Itoa(limit))
	var out []models.IncomeStatement
	if err := c.FetchJSON(ctx, "income-statement", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ domsvc.MarketData = (*Client)(nil)

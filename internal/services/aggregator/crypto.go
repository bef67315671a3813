package aggregator

import (
	"context"
	"strings"

	"Diversonal/internal/domain/models"
	"Diversonal/internal/services/feargreed"
)

const (
	quoteCurrency = "USD"

	// Weekly SMAs are computed upstream from daily windows.
	sma20WeekDays  = 140
	sma50WeekDays  = 350
	sma200WeekDays = 1400

	rsiOverbought = 70
	rsiOversold   = 30
)

const (
	RSIOverbought = "Overbought"
	RSIOversold   = "Oversold"
	RSINeutral    = "Neutral"
)

// NormalizeCryptoTicker upper-cases a coin symbol and appends USD unless already present.
func NormalizeCryptoTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if strings.HasSuffix(t, quoteCurrency) {
		return t
	}
	return t + quoteCurrency
}

// RSILabel classifies an RSI reading: Overbought at 70 or above, Oversold at 30 or below.
func RSILabel(rsi *float64) *string {
	if rsi == nil {
		return nil
	}
	label := RSINeutral
	switch {
	case *rsi >= rsiOverbought:
		label = RSIOverbought
	case *rsi <= rsiOversold:
		label = RSIOversold
	}
	return &label
}

// Crypto gathers market data, weekly SMAs and news for a coin, quoted in USD.
func (a *Aggregator) Crypto(ctx context.Context, ticker string) (*models.CryptoMetrics, feargreed.Input) {
	symbol := NormalizeCryptoTicker(ticker)

	res := a.join(ctx, symbol,
		fetch{mQuote, func(ctx context.Context) (interface{}, error) { return a.md.Quote(ctx, symbol) }},
		fetch{mRSI, func(ctx context.Context) (interface{}, error) { return a.md.RSI(ctx, symbol, rsiPeriod) }},
		fetch{mSMA20W, func(ctx context.Context) (interface{}, error) { return a.md.SMA(ctx, symbol, sma20WeekDays) }},
		fetch{mSMA50W, func(ctx context.Context) (interface{}, error) { return a.md.SMA(ctx, symbol, sma50WeekDays) }},
		fetch{mSMA200W, func(ctx context.Context) (interface{}, error) { return a.md.SMA(ctx, symbol, sma200WeekDays) }},
		fetch{mNews, func(ctx context.Context) (interface{}, error) { return a.md.CryptoNews(ctx, symbol, a.newsLimit) }},
		fetch{mChange, func(ctx context.Context) (interface{}, error) { return a.md.PriceChange(ctx, symbol) }},
	)

	m := &models.CryptoMetrics{Symbol: symbol}
	if q, _ := res[mQuote].(*models.Quote); q != nil {
		m.Price = q.Price
		m.Volume = q.Volume
		m.MarketCap = q.MarketCap
	}
	m.RSI, _ = res[mRSI].(*float64)
	m.RSILabel = RSILabel(m.RSI)
	m.SMA20W, _ = res[mSMA20W].(*float64)
	m.SMA50W, _ = res[mSMA50W].(*float64)
	m.SMA200W, _ = res[mSMA200W].(*float64)
	m.PriceChange, _ = res[mChange].(*models.PriceChange)
	news, _ := res[mNews].([]models.NewsArticle)

	in := feargreed.Input{
		Ticker:      symbol,
		AssetClass:  models.AssetClassCryptocurrencies,
		RSI:         m.RSI,
		PriceChange: m.PriceChange,
		Facts: []feargreed.Fact{
			{Name: "Price", Value: m.Price},
			{Name: "24h volume", Value: m.Volume},
			{Name: "Market cap", Value: m.MarketCap},
			{Name: "20-week SMA", Value: m.SMA20W},
			{Name: "50-week SMA", Value: m.SMA50W},
			{Name: "200-week SMA", Value: m.SMA200W},
		},
		News: news,
	}
	return m, in
}

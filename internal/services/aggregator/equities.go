package aggregator

import (
	"context"

	"Diversonal/internal/domain/models"
	"Diversonal/internal/services/feargreed"
)

const incomeStatementLimit = 2

const (
	mNews       = "news"
	mRatios     = "ratios"
	mKeyMetrics = "key_metrics"
	mQuote      = "quote"
	mChange     = "price_change"
	mRSI        = "rsi"
	mIncome     = "income_statement"
	mSMA20W     = "sma_20w"
	mSMA50W     = "sma_50w"
	mSMA200W    = "sma_200w"
)

// Equities gathers fundamentals, technicals and news for a stock.
func (a *Aggregator) Equities(ctx context.Context, ticker string) (*models.EquityMetrics, feargreed.Input) {
	res := a.join(ctx, ticker,
		fetch{mNews, func(ctx context.Context) (interface{}, error) { return a.md.StockNews(ctx, ticker, a.newsLimit) }},
		fetch{mRatios, func(ctx context.Context) (interface{}, error) { return a.md.RatiosTTM(ctx, ticker) }},
		fetch{mKeyMetrics, func(ctx context.Context) (interface{}, error) { return a.md.KeyMetricsTTM(ctx, ticker) }},
		fetch{mQuote, func(ctx context.Context) (interface{}, error) { return a.md.Quote(ctx, ticker) }},
		fetch{mChange, func(ctx context.Context) (interface{}, error) { return a.md.PriceChange(ctx, ticker) }},
		fetch{mRSI, func(ctx context.Context) (interface{}, error) { return a.md.RSI(ctx, ticker, rsiPeriod) }},
		fetch{mIncome, func(ctx context.Context) (interface{}, error) {
			return a.md.IncomeStatements(ctx, ticker, incomeStatementLimit)
		}},
	)

	m := &models.EquityMetrics{}
	if r, _ := res[mRatios].(*models.Ratios); r != nil {
		m.PERatio = r.PERatio
		m.PriceToBook = r.PriceToBook
		m.GrossMargin = r.GrossMargin
		m.NetProfitMargin = r.NetProfitMargin
		m.DebtToEquity = r.DebtToEquity
	}
	if km, _ := res[mKeyMetrics].(*models.KeyMetrics); km != nil {
		m.ROE = km.ROE
		m.FreeCashFlowYield = km.FreeCashFlowYield
	}
	if q, _ := res[mQuote].(*models.Quote); q != nil {
		m.Price = q.Price
		m.SMA50 = q.PriceAvg50
		m.SMA200 = q.PriceAvg200
		m.MarketCap = q.MarketCap
	}
	m.PriceChange, _ = res[mChange].(*models.PriceChange)
	m.RSI, _ = res[mRSI].(*float64)
	if st, _ := res[mIncome].([]models.IncomeStatement); len(st) >= 2 {
		m.RevenueGrowth, m.GrowthPeriod = RevenueGrowth(st[0], st[1])
	}
	news, _ := res[mNews].([]models.NewsArticle)

	growthName := "Revenue growth"
	if m.GrowthPeriod != nil {
		growthName += " (" + *m.GrowthPeriod + ")"
	}
	in := feargreed.Input{
		Ticker:      ticker,
		AssetClass:  models.AssetClassEquities,
		RSI:         m.RSI,
		PriceChange: m.PriceChange,
		Facts: []feargreed.Fact{
			{Name: "P/E ratio", Value: m.PERatio},
			{Name: "Price to book", Value: m.PriceToBook},
			{Name: "Gross margin", Value: m.GrossMargin},
			{Name: "Net profit margin", Value: m.NetProfitMargin},
			{Name: "Debt to equity", Value: m.DebtToEquity},
			{Name: "Return on equity", Value: m.ROE},
			{Name: "Free cash flow yield", Value: m.FreeCashFlowYield},
			{Name: growthName, Value: m.RevenueGrowth, Unit: "%"},
			{Name: "50-day SMA", Value: m.SMA50},
			{Name: "200-day SMA", Value: m.SMA200},
			{Name: "Price", Value: m.Price},
		},
		News: news,
	}
	return m, in
}

package aggregator

import (
	"context"

	"Diversonal/internal/domain/models"
	"Diversonal/internal/services/feargreed"
)

// Simplified gathers news, price momentum and RSI for classes scored without fundamentals.
func (a *Aggregator) Simplified(ctx context.Context, ticker string, ac models.AssetClass) (*models.SimplifiedMetrics, feargreed.Input) {
	res := a.join(ctx, ticker,
		fetch{mNews, func(ctx context.Context) (interface{}, error) { return a.md.StockNews(ctx, ticker, a.newsLimit) }},
		fetch{mChange, func(ctx context.Context) (interface{}, error) { return a.md.PriceChange(ctx, ticker) }},
		fetch{mRSI, func(ctx context.Context) (interface{}, error) { return a.md.RSI(ctx, ticker, rsiPeriod) }},
	)

	m := &models.SimplifiedMetrics{}
	m.RSI, _ = res[mRSI].(*float64)
	m.PriceChange, _ = res[mChange].(*models.PriceChange)
	news, _ := res[mNews].([]models.NewsArticle)

	in := feargreed.Input{
		Ticker:      ticker,
		AssetClass:  ac,
		RSI:         m.RSI,
		PriceChange: m.PriceChange,
		News:        news,
	}
	return m, in
}

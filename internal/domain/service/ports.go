package service

import (
	"context"

	"Diversonal/internal/domain/models"
)

// MarketData is the subset of the market-data provider the aggregators read from.
type MarketData interface {
	StockNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error)
	CryptoNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
	RatiosTTM(ctx context.Context, ticker string) (*models.Ratios, error)
	KeyMetricsTTM(ctx context.Context, ticker string) (*models.KeyMetrics, error)
	Quote(ctx context.Context, ticker string) (*models.Quote, error)
	PriceChange(ctx context.Context, ticker string) (*models.PriceChange, error)
	RSI(ctx context.Context, ticker string, period int) (*float64, error)
	SMA(ctx context.Context, ticker string, period int) (*float64, error)
	IncomeStatements(ctx context.Context, ticker string, limit int) ([]models.IncomeStatement, error)
}

// Completer sends a prompt to a language model and returns its raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

package models

// Quote is the latest quote snapshot for a symbol.
type Quote struct {
	Symbol           string   `json:"symbol"`
	Price            *float64 `json:"price"`
	Volume           *float64 `json:"volume"`
	MarketCap        *float64 `json:"marketCap"`
	PriceAvg50       *float64 `json:"priceAvg50"`
	PriceAvg200      *float64 `json:"priceAvg200"`
	ChangePercentage *float64 `json:"changePercentage"`
}

// Ratios are trailing-twelve-month valuation and margin ratios.
type Ratios struct {
	PERatio         *float64 `json:"priceToEarningsRatioTTM"`
	PriceToBook     *float64 `json:"priceToBookRatioTTM"`
	GrossMargin     *float64 `json:"grossProfitMarginTTM"`
	NetProfitMargin *float64 `json:"netProfitMarginTTM"`
	DebtToEquity    *float64 `json:"debtToEquityRatioTTM"`
}

// KeyMetrics are trailing-twelve-month return and cash-flow metrics.
type KeyMetrics struct {
	ROE               *float64 `json:"returnOnEquityTTM"`
	FreeCashFlowYield *float64 `json:"freeCashFlowYieldTTM"`
}

// IncomeStatement is one reported income statement period.
type IncomeStatement struct {
	Date    string  `json:"date"`
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

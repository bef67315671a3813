package models

import "strings"

// AssetClass is the closed set of asset classes the pipeline knows how to score.
type AssetClass int

const (
	// AssetClassOther is an unrecognized tag. It is scored like bonds unless strict mode rejects it.
	AssetClassOther AssetClass = iota
	AssetClassEquities
	AssetClassCryptocurrencies
	AssetClassCash
	AssetClassBonds
	AssetClassRealEstate
	AssetClassCommodities
)

var assetClassTags = map[string]AssetClass{
	"equities":         AssetClassEquities,
	"cryptocurrencies": AssetClassCryptocurrencies,
	"cash":             AssetClassCash,
	"bonds":            AssetClassBonds,
	"real estate":      AssetClassRealEstate,
	"realestate":       AssetClassRealEstate,
	"commodities":      AssetClassCommodities,
}

// ParseAssetClass maps a request tag to an AssetClass. ok is false for unknown tags,
// in which case AssetClassOther is returned.
func ParseAssetClass(tag string) (AssetClass, bool) {
	ac, ok := assetClassTags[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return AssetClassOther, false
	}
	return ac, true
}

func (a AssetClass) String() string {
	switch a {
	case AssetClassEquities:
		return "Equities"
	case AssetClassCryptocurrencies:
		return "Cryptocurrencies"
	case AssetClassCash:
		return "Cash"
	case AssetClassBonds:
		return "Bonds"
	case AssetClassRealEstate:
		return "Real Estate"
	case AssetClassCommodities:
		return "Commodities"
	default:
		return "Other"
	}
}

// Simplified reports whether the class is scored without fundamentals.
func (a AssetClass) Simplified() bool {
	switch a {
	case AssetClassBonds, AssetClassRealEstate, AssetClassCommodities, AssetClassOther:
		return true
	}
	return false
}

// PriceChange holds percentage price moves. Nil fields were not reported upstream.
type PriceChange struct {
	OneDay     *float64 `json:"1D"`
	FiveDay    *float64 `json:"5D"`
	OneMonth   *float64 `json:"1M"`
	ThreeMonth *float64 `json:"3M"`
}

// NewsArticle is one upstream news item.
type NewsArticle struct {
	Title         string `json:"title"`
	Site          string `json:"site"`
	PublishedDate string `json:"publishedDate"`
	URL           string `json:"url"`
	Text          string `json:"text,omitempty"`
}

// Headline is the news item surfaced alongside a score.
type Headline struct {
	Title         string `json:"title"`
	Site          string `json:"site"`
	PublishedDate string `json:"publishedDate"`
	URL           string `json:"url"`
}

// HeadlineFrom copies the display fields of an article.
func HeadlineFrom(a NewsArticle) *Headline {
	return &Headline{Title: a.Title, Site: a.Site, PublishedDate: a.PublishedDate, URL: a.URL}
}

// EquityMetrics are the fundamentals and technicals gathered for a stock.
type EquityMetrics struct {
	Price             *float64     `json:"price"`
	PERatio           *float64     `json:"peRatio"`
	PriceToBook       *float64     `json:"priceToBook"`
	GrossMargin       *float64     `json:"grossMargin"`
	NetProfitMargin   *float64     `json:"netProfitMargin"`
	DebtToEquity      *float64     `json:"debtToEquity"`
	ROE               *float64     `json:"roe"`
	FreeCashFlowYield *float64     `json:"freeCashFlowYield"`
	RevenueGrowth     *float64     `json:"revenueGrowth"`
	GrowthPeriod      *string      `json:"growthPeriod"`
	SMA50             *float64     `json:"sma50"`
	SMA200            *float64     `json:"sma200"`
	MarketCap         *float64     `json:"marketCap"`
	RSI               *float64     `json:"rsi"`
	PriceChange       *PriceChange `json:"priceChange"`
}

// CryptoMetrics are the market and technical values gathered for a coin pair.
type CryptoMetrics struct {
	Symbol      string       `json:"symbol"`
	Price       *float64     `json:"price"`
	Volume      *float64     `json:"volume"`
	MarketCap   *float64     `json:"marketCap"`
	RSI         *float64     `json:"rsi"`
	RSILabel    *string      `json:"rsiLabel"`
	SMA20W      *float64     `json:"sma20w"`
	SMA50W      *float64     `json:"sma50w"`
	SMA200W     *float64     `json:"sma200w"`
	PriceChange *PriceChange `json:"priceChange"`
}

// SimplifiedMetrics are gathered for classes without fundamentals.
type SimplifiedMetrics struct {
	RSI         *float64     `json:"rsi"`
	PriceChange *PriceChange `json:"priceChange"`
}

// CashMetrics carries the assumed cash yield.
type CashMetrics struct {
	Yield float64 `json:"yield"`
}

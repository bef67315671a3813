package feargreed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"Diversonal/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply   string
	err     error
	block   bool
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func sampleNews() []models.NewsArticle {
	return []models.NewsArticle{
		{Title: "Apple beats estimates", Site: "reuters.com", PublishedDate: "2024-05-02 16:30:00", URL: "https://example.com/1"},
		{Title: "iPhone sales slow", Site: "cnbc.com", PublishedDate: "2024-05-01 09:00:00", URL: "https://example.com/2"},
		{Title: "Apple announces buyback", Site: "bloomberg.com", PublishedDate: "2024-04-30 12:00:00", URL: "https://example.com/3"},
	}
}

func TestScoreComposite(t *testing.T) {
	c := &fakeCompleter{reply: "```json\n{\"momentumScore\":65,\"newsScore\":80,\"fundamentalsScore\":50,\"headlineNumber\":3}\n```"}
	s := NewScorer(c)

	res := s.Score(context.Background(), Input{
		Ticker:     "AAPL",
		AssetClass: models.AssetClassEquities,
		RSI:        f64(72),
		News:       sampleNews(),
	})

	assert.Equal(t, 70, res.FearGreed.Score)
	assert.Equal(t, models.Greed, res.FearGreed.Label)
	require.NotNil(t, res.FearGreed.RSI)
	assert.Equal(t, 72.0, *res.FearGreed.RSI)
	assert.Equal(t, models.SourceComposite, res.Source)
	require.NotNil(t, res.Headline)
	assert.Equal(t, "Apple announces buyback", res.Headline.Title)
	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "AAPL")
}

func TestScoreFallsBackToRSIOnModelError(t *testing.T) {
	s := NewScorer(&fakeCompleter{err: errors.New("upstream 503")})

	res := s.Score(context.Background(), Input{
		Ticker:     "AAPL",
		AssetClass: models.AssetClassEquities,
		RSI:        f64(18),
		News:       sampleNews(),
	})

	assert.Equal(t, 18, res.FearGreed.Score)
	assert.Equal(t, models.ExtremeFear, res.FearGreed.Label)
	require.NotNil(t, res.FearGreed.RSI)
	assert.Equal(t, 18.0, *res.FearGreed.RSI)
	assert.Equal(t, models.SourceRSI, res.Source)
	require.NotNil(t, res.Headline)
	assert.Equal(t, "Apple beats estimates", res.Headline.Title)
}

func TestScoreFallsBackToNeutralWithoutRSI(t *testing.T) {
	s := NewScorer(&fakeCompleter{reply: "I cannot help with that."})

	res := s.Score(context.Background(), Input{Ticker: "TLT", AssetClass: models.AssetClassBonds})

	assert.Equal(t, 50, res.FearGreed.Score)
	assert.Equal(t, models.Neutral, res.FearGreed.Label)
	assert.Nil(t, res.FearGreed.RSI)
	assert.Equal(t, models.SourceNeutral, res.Source)
	assert.Nil(t, res.Headline)
}

func TestScoreWithoutCompleter(t *testing.T) {
	res := NewScorer(nil).Score(context.Background(), Input{
		Ticker:     "GLD",
		AssetClass: models.AssetClassCommodities,
		RSI:        f64(63.4),
	})

	assert.Equal(t, 63, res.FearGreed.Score)
	assert.Equal(t, models.Greed, res.FearGreed.Label)
	assert.Equal(t, models.SourceRSI, res.Source)
}

func TestScoreFullVariantRequiresFundamentals(t *testing.T) {
	s := NewScorer(&fakeCompleter{reply: `{"momentumScore":90,"newsScore":90}`})

	res := s.Score(context.Background(), Input{Ticker: "MSFT", AssetClass: models.AssetClassEquities, RSI: f64(35)})

	assert.Equal(t, 35, res.FearGreed.Score)
	assert.Equal(t, models.SourceRSI, res.Source)
}

func TestScoreTimeout(t *testing.T) {
	s := NewScorer(&fakeCompleter{block: true}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	res := s.Score(context.Background(), Input{Ticker: "BTCUSD", AssetClass: models.AssetClassCryptocurrencies, RSI: f64(81)})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 81, res.FearGreed.Score)
	assert.Equal(t, models.ExtremeGreed, res.FearGreed.Label)
}

func TestBuildPromptFull(t *testing.T) {
	p := BuildPrompt(Input{
		Ticker:      "AAPL",
		AssetClass:  models.AssetClassEquities,
		RSI:         f64(55.123),
		PriceChange: &models.PriceChange{OneDay: f64(1.5)},
		Facts: []Fact{
			{Name: "P/E ratio", Value: f64(28.4)},
			{Name: "Revenue growth", Unit: "%"},
		},
		News: sampleNews()[:2],
	})

	assert.Contains(t, p, "- 1 day: 1.50%")
	assert.Contains(t, p, "- 5 days: N/A")
	assert.Contains(t, p, "- RSI(14): 55.12")
	assert.Contains(t, p, "Fundamentals:")
	assert.Contains(t, p, "- P/E ratio: 28.40")
	assert.Contains(t, p, "- Revenue growth: N/A")
	assert.Contains(t, p, "1. Apple beats estimates (reuters.com, 2024-05-02 16:30:00)")
	assert.Contains(t, p, "2. iPhone sales slow")
	assert.Contains(t, p, `"fundamentalsScore"`)
}

func TestBuildPromptSimplified(t *testing.T) {
	p := BuildPrompt(Input{
		Ticker:     "VNQ",
		AssetClass: models.AssetClassRealEstate,
		Facts:      []Fact{{Name: "ignored", Value: f64(1)}},
	})

	assert.NotContains(t, p, "Fundamentals:")
	assert.NotContains(t, p, "ignored")
	assert.NotContains(t, p, "fundamentalsScore")
	assert.Contains(t, p, "(none)")
	assert.True(t, strings.HasPrefix(p, "You are a market sentiment analyst."))
}

func TestBuildPromptCryptoTechnicals(t *testing.T) {
	p := BuildPrompt(Input{
		Ticker:     "BTCUSD",
		AssetClass: models.AssetClassCryptocurrencies,
		Facts:      []Fact{{Name: "20-week SMA", Value: f64(60000)}},
	})

	assert.Contains(t, p, "Technicals:")
	assert.NotContains(t, p, "Fundamentals:")
}

package feargreed

import (
	"fmt"
	"strings"

	"Diversonal/internal/domain/models"
)

// Fact is one named value shown to the model under fundamentals or technicals.
type Fact struct {
	Name  string
	Value *float64
	Unit  string
}

// Input is everything the scorer needs for one asset.
type Input struct {
	Ticker      string
	AssetClass  models.AssetClass
	RSI         *float64
	PriceChange *models.PriceChange
	// Facts are fundamentals for equities and technicals for crypto. Ignored for VariantSimplified.
	Facts []Fact
	News  []models.NewsArticle
}

// Variant is derived from the asset class.
func (in Input) Variant() Variant {
	return VariantFor(in.AssetClass)
}

func fmtValue(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%s", *v, unit)
}

// BuildPrompt renders the scoring request sent to the language model.
func BuildPrompt(in Input) string {
	var b strings.Builder
	v := in.Variant()

	fmt.Fprintf(&b, "You are a market sentiment analyst. Assess %s (%s) and rate current market sentiment.\n\n",
		in.Ticker, in.AssetClass)

	b.WriteString("Price momentum:\n")
	pc := in.PriceChange
	if pc == nil {
		pc = &models.PriceChange{}
	}
	fmt.Fprintf(&b, "- 1 day: %s\n", fmtValue(pc.OneDay, "%"))
	fmt.Fprintf(&b, "- 5 days: %s\n", fmtValue(pc.FiveDay, "%"))
	fmt.Fprintf(&b, "- 1 month: %s\n", fmtValue(pc.OneMonth, "%"))
	fmt.Fprintf(&b, "- 3 months: %s\n", fmtValue(pc.ThreeMonth, "%"))
	fmt.Fprintf(&b, "- RSI(14): %s\n\n", fmtValue(in.RSI, ""))

	if v == VariantFull && len(in.Facts) > 0 {
		if in.AssetClass == models.AssetClassCryptocurrencies {
			b.WriteString("Technicals:\n")
		} else {
			b.WriteString("Fundamentals:\n")
		}
		for _, f := range in.Facts {
			fmt.Fprintf(&b, "- %s: %s\n", f.Name, fmtValue(f.Value, f.Unit))
		}
		b.WriteString("\n")
	}

	b.WriteString("Recent headlines:\n")
	if len(in.News) == 0 {
		b.WriteString("(none)\n")
	}
	for i, a := range in.News {
		fmt.Fprintf(&b, "%d. %s (%s, %s)\n", i+1, a.Title, a.Site, a.PublishedDate)
	}

	b.WriteString("\nScore each dimension from 0 (extreme fear) to 100 (extreme greed).\n")
	b.WriteString("Reply with a single JSON object and nothing else:\n")
	if v == VariantFull {
		b.WriteString(`{"momentumScore": <0-100>, "newsScore": <0-100>, "fundamentalsScore": <0-100>, "headlineNumber": <number of the most market-moving headline>}`)
	} else {
		b.WriteString(`{"momentumScore": <0-100>, "newsScore": <0-100>, "headlineNumber": <number of the most market-moving headline>}`)
	}
	b.WriteString("\n")
	return b.String()
}

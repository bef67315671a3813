package feargreed

import (
	"math"

	"Diversonal/internal/domain/models"
)

// Variant selects the weighting scheme.
type Variant int

const (
	// VariantFull blends RSI, news, momentum and fundamentals (equities, crypto).
	VariantFull Variant = iota
	// VariantSimplified drops the fundamentals term (bonds, real estate, commodities).
	VariantSimplified
)

func (v Variant) String() string {
	if v == VariantSimplified {
		return "simplified"
	}
	return "full"
}

// VariantFor returns the weighting scheme for an asset class.
func VariantFor(ac models.AssetClass) Variant {
	if ac.Simplified() {
		return VariantSimplified
	}
	return VariantFull
}

const (
	neutralScore = 50

	fullRSIWeight          = 0.35
	fullNewsWeight         = 0.30
	fullMomentumWeight     = 0.25
	fullFundamentalsWeight = 0.10

	simplifiedRSIWeight      = 0.40
	simplifiedMomentumWeight = 0.35
	simplifiedNewsWeight     = 0.25
)

// Scores are the sub-scores returned by the language model, each in [0,100].
type Scores struct {
	Momentum       float64
	News           float64
	Fundamentals   float64
	HeadlineNumber int
}

// Composite combines measured RSI with model sub-scores. A missing RSI counts as 50.
func Composite(v Variant, rsi *float64, s Scores) int {
	r := float64(neutralScore)
	if rsi != nil {
		r = *rsi
	}

	var raw float64
	switch v {
	case VariantSimplified:
		raw = r*simplifiedRSIWeight + s.Momentum*simplifiedMomentumWeight + s.News*simplifiedNewsWeight
	default:
		raw = r*fullRSIWeight + s.News*fullNewsWeight + s.Momentum*fullMomentumWeight + s.Fundamentals*fullFundamentalsWeight
	}
	return clamp(int(math.Round(raw)))
}

// Fallback scores from RSI alone, or returns the neutral score when RSI is missing.
func Fallback(rsi *float64) (int, models.ScoreSource) {
	if rsi == nil {
		return neutralScore, models.SourceNeutral
	}
	return clamp(int(math.Round(*rsi))), models.SourceRSI
}

// Label buckets a score: <=20, <=40, <=60, <=80, above.
func Label(score int) models.FearGreedLabel {
	switch {
	case score <= 20:
		return models.ExtremeFear
	case score <= 40:
		return models.Fear
	case score <= 60:
		return models.Neutral
	case score <= 80:
		return models.Greed
	default:
		return models.ExtremeGreed
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

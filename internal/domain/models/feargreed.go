package models

// FearGreedLabel is the bucketed reading of a score.
type FearGreedLabel string

const (
	ExtremeFear  FearGreedLabel = "Extreme Fear"
	Fear         FearGreedLabel = "Fear"
	Neutral      FearGreedLabel = "Neutral"
	Greed        FearGreedLabel = "Greed"
	ExtremeGreed FearGreedLabel = "Extreme Greed"
)

// ScoreSource records which tier produced a score.
type ScoreSource string

const (
	SourceComposite ScoreSource = "composite"
	SourceRSI       ScoreSource = "rsi"
	SourceNeutral   ScoreSource = "neutral"
)

// FearGreed is the composite sentiment reading. RSI is always the measured value, never an LLM estimate.
type FearGreed struct {
	Score int            `json:"score"`
	Label FearGreedLabel `json:"label"`
	RSI   *float64       `json:"rsi"`
}

// ScoreRecord is a scored request as handed to score sinks.
type ScoreRecord struct {
	Ticker     string
	AssetClass string
	Score      int
	Label      FearGreedLabel
	RSI        *float64
	Source     ScoreSource
	Headline   string
	Timestamp  int64
}

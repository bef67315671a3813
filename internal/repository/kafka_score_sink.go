package repository

import (
	"context"
	"fmt"

	"Diversonal/internal/domain/models"
	domrepo "Diversonal/internal/domain/repository"
)

type publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// scoreEvent is the JSON payload published per score.
type scoreEvent struct {
	Ticker     string   `json:"ticker"`
	AssetClass string   `json:"assetClass"`
	Score      int      `json:"score"`
	Label      string   `json:"label"`
	RSI        *float64 `json:"rsi"`
	Source     string   `json:"source"`
	Headline   string   `json:"headline,omitempty"`
	Timestamp  int64    `json:"ts"`
}

// KafkaScoreSink publishes scores keyed by ticker so a ticker's history stays on one partition.
type KafkaScoreSink struct {
	pub   publisher
	topic string
}

// NewKafkaScoreSink creates a sink. The producer's lifecycle belongs to the caller.
func NewKafkaScoreSink(pub publisher, topic string) *KafkaScoreSink {
	return &KafkaScoreSink{pub: pub, topic: topic}
}

func (k *KafkaScoreSink) Record(ctx context.Context, rec models.ScoreRecord) error {
	ev := scoreEvent{
		Ticker:     rec.Ticker,
		AssetClass: rec.AssetClass,
		Score:      rec.Score,
		Label:      string(rec.Label),
		RSI:        rec.RSI,
		Source:     string(rec.Source),
		Headline:   rec.Headline,
		Timestamp:  rec.Timestamp,
	}
	if err := k.pub.Publish(ctx, k.topic, []byte(rec.Ticker), ev); err != nil {
		return fmt.Errorf("publish score: %w", err)
	}
	return nil
}

func (k *KafkaScoreSink) Close() error { return nil }

var _ domrepo.ScoreSink = (*KafkaScoreSink)(nil)

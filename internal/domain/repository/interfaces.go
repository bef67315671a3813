package repository

import (
	"context"

	"Diversonal/internal/domain/models"
)

// ScoreSink receives every computed Fear & Greed result.
type ScoreSink interface {
	Record(ctx context.Context, rec models.ScoreRecord) error
	Close() error
}

type Metrics interface {
	RecordRequest(assetClass string, seconds float64)
	RecordUpstreamError(endpoint string)
	RecordScoreSource(source string)
	RecordCache(result string)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Diversonal/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	query string
	args  []interface{}
	err   error
}

func (f *fakeExec) ExecContext(_ context.Context, q string, args ...interface{}) (sql.Result, error) {
	f.query, f.args = q, args
	return nil, f.err
}

type fakePublisher struct {
	topic string
	key   []byte
	value interface{}
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	f.topic, f.key, f.value = topic, key, value
	return f.err
}

func sampleRecord() models.ScoreRecord {
	rsi := 18.0
	return models.ScoreRecord{
		Ticker:     "AAPL",
		AssetClass: "Equities",
		Score:      18,
		Label:      models.ExtremeFear,
		RSI:        &rsi,
		Source:     models.SourceRSI,
		Headline:   "Apple beats estimates",
		Timestamp:  1_700_000_000_123,
	}
}

func TestCHScoreStoreRecord(t *testing.T) {
	db := &fakeExec{}
	s := newCHScoreStore(db, "diversonal.fear_greed_scores", nil)

	require.NoError(t, s.Record(context.Background(), sampleRecord()))

	assert.Contains(t, db.query, "INSERT INTO diversonal.fear_greed_scores")
	require.Len(t, db.args, 8)
	assert.Equal(t, time.UnixMilli(1_700_000_000_123).UTC(), db.args[0])
	assert.Equal(t, "AAPL", db.args[1])
	assert.Equal(t, uint8(18), db.args[3])
	assert.Equal(t, "Extreme Fear", db.args[4])
	assert.Equal(t, "rsi", db.args[6])
}

func TestCHScoreStoreRecordError(t *testing.T) {
	s := newCHScoreStore(&fakeExec{err: errors.New("connection refused")}, "t", nil)
	err := s.Record(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert score")
}

func TestCHScoreStoreSchema(t *testing.T) {
	s := newCHScoreStore(&fakeExec{}, "diversonal.fear_greed_scores", nil)
	stmts := s.Schema()
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS diversonal.fear_greed_scores")
}

func TestKafkaScoreSinkRecord(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewKafkaScoreSink(pub, "diversonal.scores")

	require.NoError(t, sink.Record(context.Background(), sampleRecord()))

	assert.Equal(t, "diversonal.scores", pub.topic)
	assert.Equal(t, []byte("AAPL"), pub.key)
	b, err := json.Marshal(pub.value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticker":"AAPL","assetClass":"Equities","score":18,"label":"Extreme Fear","rsi":18,"source":"rsi","headline":"Apple beats estimates","ts":1700000000123}`, string(b))
}

func TestKafkaScoreSinkError(t *testing.T) {
	sink := NewKafkaScoreSink(&fakePublisher{err: errors.New("leader not available")}, "t")
	assert.Error(t, sink.Record(context.Background(), sampleRecord()))
}

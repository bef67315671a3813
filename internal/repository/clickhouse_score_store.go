package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"Diversonal/internal/domain/models"
	domrepo "Diversonal/internal/domain/repository"
	pkgch "Diversonal/pkg/clickhouse"
	applogger "Diversonal/pkg/logger"
)

const scoreTable = "fear_greed_scores"

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CHScoreStore keeps the history of Fear & Greed scores in ClickHouse.
type CHScoreStore struct {
	db    execer
	table string
	l     *applogger.Logger
}

func NewCHScoreStore(ch *pkgch.Client, l *applogger.Logger) *CHScoreStore {
	return newCHScoreStore(ch.DB(), ch.Database()+"."+scoreTable, l)
}

func newCHScoreStore(db execer, table string, l *applogger.Logger) *CHScoreStore {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHScoreStore{db: db, table: table, l: l}
}

// Schema returns the idempotent DDL for the score table.
func (s *CHScoreStore) Schema() []string {
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            ts          DateTime64(3),
            ticker      LowCardinality(String),
            asset_class LowCardinality(String),
            score       UInt8,
            label       LowCardinality(String),
            rsi         Nullable(Float64),
            source      LowCardinality(String),
            headline    String
        )
        ENGINE = MergeTree
        PARTITION BY toYYYYMM(ts)
        ORDER BY (ticker, ts)
    `, s.table)}
}

func (s *CHScoreStore) Record(ctx context.Context, rec models.ScoreRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, ticker, asset_class, score, label, rsi, source, headline) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		time.UnixMilli(rec.Timestamp).UTC(),
		rec.Ticker,
		rec.AssetClass,
		uint8(rec.Score),
		string(rec.Label),
		rec.RSI,
		string(rec.Source),
		rec.Headline,
	)
	if err != nil {
		s.l.Error("clickhouse insert score error",
			applogger.String("table", s.table),
			applogger.String("ticker", rec.Ticker),
			applogger.Error(err),
		)
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Close is a no-op; the connection pool is owned by pkg/clickhouse.
func (s *CHScoreStore) Close() error { return nil }

var _ domrepo.ScoreSink = (*CHScoreStore)(nil)

package candles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/invest-backtest/internal/model"
)

// PostgresArchive is a Cache backed by a shared Postgres candle archive.
// Chunk semantics match FileCache: one row in candle_chunks per fetched
// (figi, interval, day), with empty=true standing in for the sentinel
// file, and the day's candles in the candles table.
type PostgresArchive struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresArchive creates an archive on an existing pool.
func NewPostgresArchive(db *pgxpool.Pool, logger *slog.Logger) *PostgresArchive {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresArchive{db: db, logger: logger}
}

// EnsureSchema creates the archive tables if they do not exist.
func (a *PostgresArchive) EnsureSchema(ctx context.Context) error {
	_, err := a.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS candle_chunks (
			figi     text        NOT NULL,
			interval text        NOT NULL,
			day      date        NOT NULL,
			empty    boolean     NOT NULL,
			PRIMARY KEY (figi, interval, day)
		);
		CREATE TABLE IF NOT EXISTS candles (
			figi        text        NOT NULL,
			interval    text        NOT NULL,
			ts          timestamptz NOT NULL,
			open_units  bigint      NOT NULL,
			open_nano   integer     NOT NULL,
			high_units  bigint      NOT NULL,
			high_nano   integer     NOT NULL,
			low_units   bigint      NOT NULL,
			low_nano    integer     NOT NULL,
			close_units bigint      NOT NULL,
			close_nano  integer     NOT NULL,
			volume      bigint      NOT NULL,
			complete    boolean     NOT NULL,
			PRIMARY KEY (figi, interval, ts)
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

func (a *PostgresArchive) LoadChunk(ctx context.Context, figi string, interval model.CandleInterval, day time.Time) ([]model.Candle, bool, error) {
	day = day.UTC().Truncate(24 * time.Hour)

	var empty bool
	err := a.db.QueryRow(ctx,
		`SELECT empty FROM candle_chunks WHERE figi = $1 AND interval = $2 AND day = $3`,
		figi, string(interval), day,
	).Scan(&empty)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query chunk marker: %w", err)
	}
	if empty {
		return nil, true, nil
	}

	rows, err := a.db.Query(ctx, `
		SELECT ts, open_units, open_nano, high_units, high_nano,
		       low_units, low_nano, close_units, close_nano, volume, complete
		FROM candles
		WHERE figi = $1 AND interval = $2 AND ts >= $3 AND ts < $4
		ORDER BY ts`,
		figi, string(interval), day, day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, false, fmt.Errorf("query chunk candles: %w", err)
	}
	defer rows.Close()

	var chunk []model.Candle
	for rows.Next() {
		var c model.Candle
		if err := rows.Scan(
			&c.Time,
			&c.Open.Units, &c.Open.Nano,
			&c.High.Units, &c.High.Nano,
			&c.Low.Units, &c.Low.Nano,
			&c.Close.Units, &c.Close.Nano,
			&c.Volume, &c.Complete,
		); err != nil {
			return nil, false, fmt.Errorf("scan candle: %w", err)
		}
		chunk = append(chunk, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("read chunk candles: %w", err)
	}

	return chunk, true, nil
}

func (a *PostgresArchive) SaveChunk(ctx context.Context, figi string, interval model.CandleInterval, day time.Time, candles []model.Candle) error {
	day = day.UTC().Truncate(24 * time.Hour)

	// Replace-on-write inside one transaction: readers see either the old
	// chunk or the new one, never a partial day.
	tx, err := a.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin chunk write: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM candles WHERE figi = $1 AND interval = $2 AND ts >= $3 AND ts < $4`,
		figi, string(interval), day, day.AddDate(0, 0, 1),
	); err != nil {
		return fmt.Errorf("clear chunk candles: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO candle_chunks (figi, interval, day, empty)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (figi, interval, day) DO UPDATE SET empty = EXCLUDED.empty`,
		figi, string(interval), day, len(candles) == 0,
	); err != nil {
		return fmt.Errorf("write chunk marker: %w", err)
	}

	if len(candles) > 0 {
		batch := &pgx.Batch{}
		for _, c := range candles {
			batch.Queue(`
				INSERT INTO candles (figi, interval, ts,
					open_units, open_nano, high_units, high_nano,
					low_units, low_nano, close_units, close_nano,
					volume, complete)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				figi, string(interval), c.Time,
				c.Open.Units, c.Open.Nano, c.High.Units, c.High.Nano,
				c.Low.Units, c.Low.Nano, c.Close.Units, c.Close.Nano,
				c.Volume, c.Complete,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range candles {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("insert candle: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("flush candle batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunk write: %w", err)
	}

	a.logger.Debug("archived chunk",
		"figi", figi,
		"interval", interval,
		"day", day.Format(dayLayout),
		"candles", len(candles),
	)
	return nil
}

var _ Cache = (*PostgresArchive)(nil)

package candles

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rickgao/invest-backtest/internal/model"
)

// Cache stores one UTC day of candles per (figi, interval, day) chunk.
type Cache interface {
	// LoadChunk returns the stored chunk and found=true when the day was
	// previously stored, including days stored as confirmed empty.
	// found=false means the day was never fetched.
	LoadChunk(ctx context.Context, figi string, interval model.CandleInterval, day time.Time) ([]model.Candle, bool, error)

	// SaveChunk stores a fetched day. An empty slice records "confirmed
	// empty", distinct from never-fetched. The write replaces any
	// previous chunk atomically.
	SaveChunk(ctx context.Context, figi string, interval model.CandleInterval, day time.Time, candles []model.Candle) error
}

const dayLayout = "2006-01-02"

// FileCache keeps chunks as JSON files:
//
//	<root>/candles/<figi>/<interval>/2022-05-06.json
//
// A confirmed-empty day is a sentinel file named 2022-05-06_empty.json;
// an absent file means "unknown, must fetch".
type FileCache struct {
	root string
}

// NewFileCache creates a cache rooted at dir.
func NewFileCache(dir string) *FileCache {
	return &FileCache{root: dir}
}

func (c *FileCache) chunkFile(figi string, interval model.CandleInterval, day time.Time) string {
	return filepath.Join(c.root, "candles", figi, string(interval), day.UTC().Format(dayLayout)+".json")
}

func emptyChunkFile(chunkFile string) string {
	return chunkFile[:len(chunkFile)-len(".json")] + "_empty.json"
}

func (c *FileCache) LoadChunk(_ context.Context, figi string, interval model.CandleInterval, day time.Time) ([]model.Candle, bool, error) {
	path := c.chunkFile(figi, interval, day)

	data, err := os.ReadFile(path)
	if err == nil {
		var chunk []model.Candle
		if err := json.Unmarshal(data, &chunk); err != nil {
			return nil, false, fmt.Errorf("parse chunk %s: %w", path, err)
		}
		return chunk, true, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("read chunk %s: %w", path, err)
	}

	if _, err := os.Stat(emptyChunkFile(path)); err == nil {
		return nil, true, nil
	}

	return nil, false, nil
}

func (c *FileCache) SaveChunk(_ context.Context, figi string, interval model.CandleInterval, day time.Time, candles []model.Candle) error {
	path := c.chunkFile(figi, interval, day)
	if len(candles) == 0 {
		path = emptyChunkFile(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(candles)
	if err != nil {
		return fmt.Errorf("encode chunk: %w", err)
	}

	// Write to a temp file in the same directory, then rename, so readers
	// never observe a partially written chunk.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp chunk: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write chunk: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close chunk: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace chunk %s: %w", path, err)
	}

	return nil
}

var _ Cache = (*FileCache)(nil)

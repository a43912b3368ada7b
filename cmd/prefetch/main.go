// Command prefetch warms the candle cache for the configured instruments
// and date range, so later backtest runs hit the cache instead of the
// broker API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/invest-backtest/internal/api"
	"github.com/rickgao/invest-backtest/internal/candles"
	"github.com/rickgao/invest-backtest/internal/clock"
	"github.com/rickgao/invest-backtest/internal/config"
	"github.com/rickgao/invest-backtest/internal/database"
	"github.com/rickgao/invest-backtest/internal/model"
	"github.com/rickgao/invest-backtest/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/backtest.local.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting prefetch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	apiClient := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.Token,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	cache, closeCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up candle cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	loader := candles.New(candles.Config{
		MaxChunkDays: cfg.Cache.MaxChunkDays,
	}, apiClient, cache, clock.Real(), logger)

	interval := model.CandleInterval(cfg.Backtest.Interval)
	start := time.Now()
	for _, figi := range cfg.Backtest.Instruments {
		series, err := loader.Load(ctx, candles.Request{
			FIGI:     figi,
			Interval: interval,
			From:     cfg.Backtest.From,
			To:       cfg.Backtest.To,
			MinCount: cfg.Backtest.MinCandles,
		})
		if err != nil {
			logger.Error("prefetch failed", "figi", figi, "error", err)
			os.Exit(1)
		}
		logger.Info("cache warmed", "figi", figi, "candles", len(series))
	}
	logger.Info("prefetch complete",
		"instruments", len(cfg.Backtest.Instruments),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}

func buildCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (candles.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case "postgres":
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect archive database: %w", err)
		}
		archive := candles.NewPostgresArchive(pool, logger)
		if err := archive.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure archive schema: %w", err)
		}
		return archive, pool.Close, nil
	default:
		return candles.NewFileCache(cfg.Cache.Dir), func() {}, nil
	}
}

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
	"github.com/rickgao/invest-backtest/internal/backtest"
	"github.com/rickgao/invest-backtest/internal/broker"
	"github.com/rickgao/invest-backtest/internal/candles"
	"github.com/rickgao/invest-backtest/internal/clock"
	"github.com/rickgao/invest-backtest/internal/config"
	"github.com/rickgao/invest-backtest/internal/database"
	"github.com/rickgao/invest-backtest/internal/instruments"
	"github.com/rickgao/invest-backtest/internal/model"
	"github.com/rickgao/invest-backtest/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/backtest.local.yaml", "path to config file")
	replay := flag.Bool("replay", false, "ignore the candle cache and refetch everything")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting backtest",
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
		Replay:       *replay,
	}, apiClient, cache, clock.Real(), logger)

	registry, err := buildInstruments(ctx, cfg, apiClient)
	if err != nil {
		logger.Error("failed to resolve instruments", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, loader, registry, logger); err != nil {
		logger.Error("backtest failed", "error", err)
		os.Exit(1)
	}
}

// buildCache picks the cache backend from config. The file backend needs
// no teardown; the postgres backend returns the pool closer.
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

func buildInstruments(ctx context.Context, cfg *config.Config, client *api.Client) (*instruments.Registry, error) {
	if cfg.Backtest.InstrumentsFile != "" {
		return instruments.LoadFile(cfg.Backtest.InstrumentsFile)
	}
	list := make([]model.Instrument, 0, len(cfg.Backtest.Instruments))
	for _, figi := range cfg.Backtest.Instruments {
		inst, err := client.GetInstrumentByFIGI(ctx, figi)
		if err != nil {
			return nil, fmt.Errorf("resolve instrument %s: %w", figi, err)
		}
		list = append(list, inst)
	}
	return instruments.NewRegistry(list), nil
}

// run loads candles for every configured instrument and replays a
// buy-and-hold strategy over them: buy one lot of each instrument on the
// first bar, hold to the end, then report operations and valuation.
func run(ctx context.Context, cfg *config.Config, loader *candles.Loader, registry *instruments.Registry, logger *slog.Logger) error {
	bt := backtest.New(backtest.Config{
		InitialCapital: model.QuotationFromInt(cfg.Backtest.InitialCapital),
		Currency:       cfg.Backtest.Currency,
		CommissionRate: cfg.CommissionRate(),
	}, registry, logger)

	interval := model.CandleInterval(cfg.Backtest.Interval)
	for _, figi := range cfg.Backtest.Instruments {
		series, err := loader.Load(ctx, candles.Request{
			FIGI:     figi,
			Interval: interval,
			From:     cfg.Backtest.From,
			To:       cfg.Backtest.To,
			MinCount: cfg.Backtest.MinCandles,
		})
		if err != nil {
			return fmt.Errorf("load candles for %s: %w", figi, err)
		}
		logger.Info("candles loaded", "figi", figi, "count", len(series))
		bt.AddCandles(figi, series)
	}

	acc := bt.Account()
	bought := make(map[string]bool)
	for bt.Tick() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, figi := range cfg.Backtest.Instruments {
			if bought[figi] {
				continue
			}
			if _, ok := bt.CurrentCandle(figi); !ok {
				continue
			}
			if _, err := acc.PostOrder(ctx, broker.OrderSpec{
				FIGI:         figi,
				Direction:    broker.DirectionBuy,
				Type:         broker.OrderTypeMarket,
				QuantityLots: 1,
			}); err != nil {
				return fmt.Errorf("post order for %s: %w", figi, err)
			}
			bought[figi] = true
		}
	}

	ops, err := acc.GetOperations(ctx, broker.OperationsFilter{})
	if err != nil {
		return err
	}
	for _, op := range ops {
		fmt.Printf("%s  %-14s %-13s %s\n",
			op.Time.Format(time.RFC3339), op.FIGI, op.Type, op.Payment.String())
	}

	pf, err := acc.GetPortfolio(ctx)
	if err != nil {
		return err
	}
	for _, pos := range pf.Positions {
		fmt.Printf("position %s: %d lots, avg %s\n",
			pos.FIGI, pos.QuantityLots, pos.AveragePrice.String())
	}
	fmt.Printf("cash:    %s\n", pf.TotalAmountCurrencies.String())
	fmt.Printf("capital: %s\n", bt.Capital().String())
	return nil
}

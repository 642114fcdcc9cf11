// Command robosweep runs a parameter sweep of trading strategies over
// historical crypto bars and reports the best-performing combinations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"robosweep/internal/config"
	"robosweep/internal/data"
	"robosweep/internal/report"
	"robosweep/internal/store"
	"robosweep/internal/strategy/builtins"
	"robosweep/internal/sweep"
	"robosweep/internal/util"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "path to YAML config file (defaults apply when empty)")
		strategies  = flag.String("strategies", "", "comma-separated strategy families (overrides config)")
		symbols     = flag.String("symbols", "", "comma-separated instrument symbols (overrides config)")
		period      = flag.String("period", "", "lookback period, e.g. 1y, 6mo, 30d (overrides config)")
		interval    = flag.String("interval", "", "bar interval: 1d, 1h, 1m, 1wk (overrides config)")
		capital     = flag.Float64("capital", 0, "initial capital (overrides config)")
		commission  = flag.Float64("commission", -1, "commission rate per trade leg (overrides config)")
		workers     = flag.Int("workers", 0, "concurrent backtest workers (overrides config)")
		csvPath     = flag.String("csv", "", "CSV output path (overrides config; \"none\" disables)")
		parquetPath = flag.String("parquet", "", "Parquet output path (overrides config)")
		topN        = flag.Int("top", 0, "rows per ranking table (overrides config)")
		noCache     = flag.Bool("no-cache", false, "bypass the bar cache")
		noReport    = flag.Bool("no-report", false, "suppress the console report")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Parse()

	if *cfgPath == "" {
		*cfgPath = os.Getenv("ROBOSWEEP_CONFIG")
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyFlags(cfg, *strategies, *symbols, *period, *interval, *capital, *commission, *workers, *csvPath, *parquetPath, *topN, *logLevel)

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fetcher, err := data.NewAlpacaFetcher(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		cfg.Data.Period,
		cfg.Data.Interval,
		cfg.Alpaca.RateLimitPerMin,
	)
	if err != nil {
		log.Fatalf("invalid data configuration: %v", err)
	}

	var cache data.BarCache
	if !*noCache && cfg.Data.CachePath != "" {
		sqlCache, err := store.NewSQLiteCache(cfg.Data.CachePath, time.Duration(cfg.Data.CacheTTLDays)*24*time.Hour)
		if err != nil {
			logger.Warn("bar cache unavailable, fetching directly", "path", cfg.Data.CachePath, "error", err)
		} else {
			defer sqlCache.Close()
			cache = sqlCache
		}
	}
	provider := data.NewCachedProvider(fetcher, cache, cfg.Data.Period, cfg.Data.Interval, logger)

	sweeper, err := sweep.New(builtins.NewRegistry(), provider, sweep.Config{
		InitialCapital: cfg.Backtest.InitialCapital,
		Commission:     cfg.Backtest.Commission,
		BarsPerYear:    data.BarsPerYear(cfg.Data.Interval),
		Workers:        cfg.Sweep.Workers,
		ProgressEvery:  cfg.Sweep.ProgressEvery,
	}, logger)
	if err != nil {
		log.Fatalf("invalid sweep configuration: %v", err)
	}

	out := sweeper.Sweep(ctx, cfg.Strategies, cfg.Symbols, cfg.Ranges)
	if ctx.Err() != nil {
		logger.Warn("sweep interrupted, reporting partial results")
	}

	if cfg.Output.CSVPath != "" && cfg.Output.CSVPath != "none" {
		if err := report.WriteCSV(cfg.Output.CSVPath, out.Records); err != nil {
			logger.Error("CSV export failed", "path", cfg.Output.CSVPath, "error", err)
		} else {
			logger.Info("results exported", "format", "csv", "path", cfg.Output.CSVPath)
		}
	}
	if cfg.Output.ParquetPath != "" {
		if err := store.WriteSweepParquet(cfg.Output.ParquetPath, out.Records); err != nil {
			logger.Error("Parquet export failed", "path", cfg.Output.ParquetPath, "error", err)
		} else {
			logger.Info("results exported", "format", "parquet", "path", cfg.Output.ParquetPath)
		}
	}

	if !*noReport {
		if err := report.Console(os.Stdout, out, cfg.Output.TopN); err != nil {
			log.Fatalf("writing report: %v", err)
		}
	}

	if len(out.Records) == 0 {
		fmt.Fprintln(os.Stderr, "no combinations produced results")
		os.Exit(1)
	}
}

// applyFlags overlays non-empty command-line values onto the loaded config.
func applyFlags(cfg *config.Config, strategies, symbols, period, interval string, capital, commission float64, workers int, csvPath, parquetPath string, topN int, logLevel string) {
	if strategies != "" {
		cfg.Strategies = splitList(strategies)
	}
	if symbols != "" {
		cfg.Symbols = splitList(symbols)
	}
	if period != "" {
		cfg.Data.Period = period
	}
	if interval != "" {
		cfg.Data.Interval = interval
	}
	if capital > 0 {
		cfg.Backtest.InitialCapital = capital
	}
	if commission >= 0 {
		cfg.Backtest.Commission = commission
	}
	if workers > 0 {
		cfg.Sweep.Workers = workers
	}
	if csvPath != "" {
		cfg.Output.CSVPath = csvPath
	}
	if parquetPath != "" {
		cfg.Output.ParquetPath = parquetPath
	}
	if topN > 0 {
		cfg.Output.TopN = topN
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for a sweep run.
type Config struct {
	Strategies []string                        `yaml:"strategies"`
	Symbols    []string                        `yaml:"symbols"`
	Ranges     map[string]map[string][]float64 `yaml:"parameter_ranges"`

	Data     Data     `yaml:"data"`
	Backtest Backtest `yaml:"backtest"`
	Sweep    Sweep    `yaml:"sweep"`
	Output   Output   `yaml:"output"`
	Alpaca   Alpaca   `yaml:"alpaca"`
	Logging  Logging  `yaml:"logging"`
}

// Data controls the lookback window, bar interval, and the bar cache.
type Data struct {
	Period       string `yaml:"period"`
	Interval     string `yaml:"interval"`
	CachePath    string `yaml:"cache_path"`
	CacheTTLDays int    `yaml:"cache_ttl_days"`
}

// Backtest holds the simulation parameters shared by every combination.
type Backtest struct {
	InitialCapital float64 `yaml:"initial_capital"`
	Commission     float64 `yaml:"commission"`
}

// Sweep controls the orchestrator's concurrency and progress reporting.
type Sweep struct {
	Workers       int `yaml:"workers"`
	ProgressEvery int `yaml:"progress_every"`
}

// Output controls result export and the console report.
type Output struct {
	CSVPath     string `yaml:"csv_path"`
	ParquetPath string `yaml:"parquet_path"`
	TopN        int    `yaml:"top_n"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey          string `yaml:"api_key"`
	APISecret       string `yaml:"api_secret"`
	DataURL         string `yaml:"data_url"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

// Default returns the built-in configuration: all four strategy families over
// the major crypto pairs, with the standard parameter ranges.
func Default() *Config {
	return &Config{
		Strategies: []string{"sma_crossover", "rsi", "macd", "bollinger_bands"},
		Symbols:    []string{"BTC/USD", "ETH/USD", "LTC/USD", "BCH/USD"},
		Ranges: map[string]map[string][]float64{
			"sma_crossover": {
				"short_window": {5, 10, 20, 30},
				"long_window":  {50, 100, 200},
			},
			"rsi": {
				"period":     {7, 14, 21, 28},
				"oversold":   {20, 25, 30},
				"overbought": {70, 75, 80},
			},
			"macd": {
				"fast_period":   {8, 12, 16},
				"slow_period":   {21, 26, 30},
				"signal_period": {7, 9, 11},
			},
			"bollinger_bands": {
				"period":  {10, 20, 30},
				"std_dev": {1.5, 2.0, 2.5, 3.0},
			},
		},
		Data: Data{
			Period:       "1y",
			Interval:     "1d",
			CachePath:    "data/bars.db",
			CacheTTLDays: 1,
		},
		Backtest: Backtest{
			InitialCapital: 10000,
			Commission:     0.001,
		},
		Sweep: Sweep{
			Workers:       4,
			ProgressEvery: 50,
		},
		Output: Output{
			CSVPath: "results/sweep.csv",
			TopN:    10,
		},
		Alpaca: Alpaca{
			RateLimitPerMin: 200,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path on top of the
// defaults, then applies environment variable overrides. An empty path yields
// the defaults with overrides only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the sweep could not run with.
func (c *Config) Validate() error {
	if len(c.Strategies) == 0 {
		return fmt.Errorf("config: no strategies selected")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("config: no symbols selected")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("config: initial_capital must be positive, got %v", c.Backtest.InitialCapital)
	}
	if c.Backtest.Commission < 0 {
		return fmt.Errorf("config: commission must be non-negative, got %v", c.Backtest.Commission)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("config: workers must be non-negative, got %d", c.Sweep.Workers)
	}
	return nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CACHE_PATH"); v != "" {
		cfg.Data.CachePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}

	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (highest priority — canonical names used by SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}

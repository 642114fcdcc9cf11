// Package data resolves instrument symbols to validated price series. It
// wraps the Alpaca crypto market-data API with retry and rate limiting, and
// composes an explicit TTL cache in front of it so repeated sweeps do not
// refetch.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"robosweep/internal/domain"
	"robosweep/internal/util"
)

// ErrUnavailable indicates that no usable price data exists for a symbol.
// The sweep orchestrator skips the instrument and continues.
var ErrUnavailable = errors.New("price data unavailable")

// Fetcher fetches raw bars for a symbol from an upstream source.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) ([]domain.Bar, error)
}

// Compile-time interface check.
var _ Fetcher = (*AlpacaFetcher)(nil)

// AlpacaFetcher fetches historical crypto bars from the Alpaca market-data
// API for a fixed period and interval.
type AlpacaFetcher struct {
	client    *marketdata.Client
	timeframe marketdata.TimeFrame
	start     time.Time
	end       time.Time
	limiter   *util.RateLimiter
	log       *slog.Logger
}

// NewAlpacaFetcher creates an AlpacaFetcher covering [now-period, now] at the
// given interval. Credentials may be empty: the crypto data endpoints accept
// unauthenticated requests at a lower rate limit.
func NewAlpacaFetcher(apiKey, apiSecret, dataURL, period, interval string, ratePerMin int) (*AlpacaFetcher, error) {
	now := time.Now().UTC()
	start, err := ParsePeriod(period, now)
	if err != nil {
		return nil, err
	}
	timeframe, err := IntervalTimeFrame(interval)
	if err != nil {
		return nil, err
	}

	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &AlpacaFetcher{
		client:    marketdata.NewClient(opts),
		timeframe: timeframe,
		start:     start,
		end:       now,
		limiter:   util.NewRateLimiter(ratePerMin),
		log:       slog.Default().With("component", "data"),
	}, nil
}

// Fetch retrieves the symbol's bars, retrying transient API failures.
func (f *AlpacaFetcher) Fetch(ctx context.Context, symbol string) ([]domain.Bar, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var cryptoBars []marketdata.CryptoBar
	err := util.Retry(ctx, 3, time.Second, func() error {
		var err error
		cryptoBars, err = f.client.GetCryptoBars(symbol, marketdata.GetCryptoBarsRequest{
			TimeFrame: f.timeframe,
			Start:     f.start,
			End:       f.end,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GetCryptoBars %s: %w", symbol, err)
	}

	bars := make([]domain.Bar, 0, len(cryptoBars))
	for _, cb := range cryptoBars {
		bars = append(bars, domain.Bar{
			Symbol:     symbol,
			Timestamp:  cb.Timestamp,
			Open:       cb.Open,
			High:       cb.High,
			Low:        cb.Low,
			Close:      cb.Close,
			Volume:     cb.Volume,
			TradeCount: int64(cb.TradeCount),
			VWAP:       cb.VWAP,
		})
	}
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
	return bars, nil
}

package data

import (
	"context"
	"fmt"
	"log/slog"

	"robosweep/internal/domain"
)

// BarCache persists fetched bars keyed by (symbol, interval, period) with an
// expiry discipline owned by the implementation.
type BarCache interface {
	// Get returns the cached bars for the key. The second return value is
	// false on a miss or when the entry has expired.
	Get(ctx context.Context, symbol, interval, period string) ([]domain.Bar, bool, error)

	// Put replaces the cached bars for the key.
	Put(ctx context.Context, symbol, interval, period string, bars []domain.Bar) error
}

// CachedProvider resolves symbols to validated series, consulting a BarCache
// before the upstream fetcher. Cache failures degrade to a plain fetch.
type CachedProvider struct {
	fetcher  Fetcher
	cache    BarCache
	interval string
	period   string
	log      *slog.Logger
}

// NewCachedProvider wraps fetcher with cache. cache may be nil, in which case
// every call fetches upstream.
func NewCachedProvider(fetcher Fetcher, cache BarCache, period, interval string, log *slog.Logger) *CachedProvider {
	if log == nil {
		log = slog.Default()
	}
	return &CachedProvider{
		fetcher:  fetcher,
		cache:    cache,
		interval: interval,
		period:   period,
		log:      log.With("component", "data"),
	}
}

// Series returns the symbol's validated price series, from cache when fresh.
// All failure modes wrap ErrUnavailable so the orchestrator can skip the
// instrument uniformly.
func (p *CachedProvider) Series(ctx context.Context, symbol string) (*domain.Series, error) {
	if p.cache != nil {
		bars, ok, err := p.cache.Get(ctx, symbol, p.interval, p.period)
		if err != nil {
			p.log.Warn("cache read failed", "symbol", symbol, "error", err)
		} else if ok {
			return p.validated(symbol, bars)
		}
	}

	bars, err := p.fetcher.Fetch(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrUnavailable, symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s: no bars returned", ErrUnavailable, symbol)
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, symbol, p.interval, p.period, bars); err != nil {
			p.log.Warn("cache write failed", "symbol", symbol, "error", err)
		}
	}
	return p.validated(symbol, bars)
}

func (p *CachedProvider) validated(symbol string, bars []domain.Bar) (*domain.Series, error) {
	series, err := domain.NewSeries(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrUnavailable, symbol, err)
	}
	return series, nil
}

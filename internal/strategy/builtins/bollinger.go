package builtins

import (
	"fmt"
	"math"

	"robosweep/internal/domain"
	"robosweep/internal/indicators"
	"robosweep/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*Bollinger)(nil)

// Bollinger implements a band-breakout mean-reversion strategy: long when the
// close touches or breaks the lower band (buy the dip), flat when it touches
// or breaks the upper band, holding in between.
type Bollinger struct {
	period int
	stdDev float64
}

// NewBollinger builds a Bollinger strategy from a parameter set with keys
// "period" and "std_dev".
func NewBollinger(params map[string]float64) (strategy.Strategy, error) {
	period, err := strategy.IntParam(params, "period")
	if err != nil {
		return nil, err
	}
	stdDev, err := strategy.Param(params, "std_dev")
	if err != nil {
		return nil, err
	}
	if period < 2 {
		return nil, fmt.Errorf("%w: period must be >= 2, got %d", strategy.ErrInvalidParams, period)
	}
	if stdDev <= 0 {
		return nil, fmt.Errorf("%w: std_dev must be > 0, got %v", strategy.ErrInvalidParams, stdDev)
	}
	return &Bollinger{period: period, stdDev: stdDev}, nil
}

// Name returns "bollinger_bands".
func (s *Bollinger) Name() string { return "bollinger_bands" }

// Warmup returns period-1; the envelope is defined once a full window exists.
func (s *Bollinger) Warmup() int { return s.period - 1 }

// Evaluate returns one signal per bar based on band touches. Bars where the
// envelope has zero width (constant prices over the window) generate no
// entry or exit.
func (s *Bollinger) Evaluate(series *domain.Series) []domain.Signal {
	closes := series.Closes()
	mean, std := indicators.MeanStd(closes, s.period)

	signals := make([]domain.Signal, len(closes))
	state := domain.Flat
	for i := range closes {
		if !math.IsNaN(mean[i]) && std[i] > 0 {
			lower := mean[i] - s.stdDev*std[i]
			upper := mean[i] + s.stdDev*std[i]
			switch {
			case closes[i] <= lower:
				state = domain.Long
			case closes[i] >= upper:
				state = domain.Flat
			}
		}
		signals[i] = state
	}
	return signals
}

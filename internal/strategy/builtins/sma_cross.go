// Package builtins provides the built-in strategy families that ship with
// robosweep.
package builtins

import (
	"fmt"
	"math"

	"robosweep/internal/domain"
	"robosweep/internal/indicators"
	"robosweep/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*SMACross)(nil)

// SMACross implements a simple moving average crossover strategy. It goes
// long when the short-period SMA crosses above the long-period SMA and flat
// on the reverse crossover.
type SMACross struct {
	shortWindow int
	longWindow  int
}

// NewSMACross builds an SMACross from a parameter set with keys
// "short_window" and "long_window". The short window must be positive and
// strictly smaller than the long window.
func NewSMACross(params map[string]float64) (strategy.Strategy, error) {
	short, err := strategy.IntParam(params, "short_window")
	if err != nil {
		return nil, err
	}
	long, err := strategy.IntParam(params, "long_window")
	if err != nil {
		return nil, err
	}
	if short <= 0 || short >= long {
		return nil, fmt.Errorf("%w: need 0 < short_window < long_window, got %d/%d",
			strategy.ErrInvalidParams, short, long)
	}
	return &SMACross{shortWindow: short, longWindow: long}, nil
}

// Name returns "sma_crossover".
func (s *SMACross) Name() string { return "sma_crossover" }

// Warmup returns long_window-1, the first bar at which both averages are
// defined.
func (s *SMACross) Warmup() int { return s.longWindow - 1 }

// Evaluate returns one signal per bar based on SMA crossover state. The first
// bar where both averages are defined seeds the state by direct comparison;
// after that only crossovers change it.
func (s *SMACross) Evaluate(series *domain.Series) []domain.Signal {
	closes := series.Closes()
	short := indicators.SMA(closes, s.shortWindow)
	long := indicators.SMA(closes, s.longWindow)

	signals := make([]domain.Signal, len(closes))
	state := domain.Flat
	for i := range closes {
		if defined(short[i], long[i]) {
			switch {
			case i == 0 || !defined(short[i-1], long[i-1]):
				if short[i] > long[i] {
					state = domain.Long
				}
			case short[i] > long[i] && short[i-1] <= long[i-1]:
				state = domain.Long
			case short[i] < long[i] && short[i-1] >= long[i-1]:
				state = domain.Flat
			}
		}
		signals[i] = state
	}
	return signals
}

// defined reports whether all values are real numbers (not warm-up NaNs).
func defined(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

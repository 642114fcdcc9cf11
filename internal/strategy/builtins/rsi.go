package builtins

import (
	"fmt"
	"math"

	"robosweep/internal/domain"
	"robosweep/internal/indicators"
	"robosweep/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*RSI)(nil)

// RSI implements a bounded-momentum oscillator strategy: long while the index
// is below the oversold threshold, flat while it is above the overbought
// threshold, holding in between.
type RSI struct {
	period     int
	oversold   float64
	overbought float64
}

// NewRSI builds an RSI strategy from a parameter set with keys "period",
// "oversold", and "overbought". Thresholds must satisfy
// 0 < oversold < overbought < 100.
func NewRSI(params map[string]float64) (strategy.Strategy, error) {
	period, err := strategy.IntParam(params, "period")
	if err != nil {
		return nil, err
	}
	oversold, err := strategy.Param(params, "oversold")
	if err != nil {
		return nil, err
	}
	overbought, err := strategy.Param(params, "overbought")
	if err != nil {
		return nil, err
	}
	if period < 2 {
		return nil, fmt.Errorf("%w: period must be >= 2, got %d", strategy.ErrInvalidParams, period)
	}
	if oversold <= 0 || oversold >= overbought || overbought >= 100 {
		return nil, fmt.Errorf("%w: need 0 < oversold < overbought < 100, got %v/%v",
			strategy.ErrInvalidParams, oversold, overbought)
	}
	return &RSI{period: period, oversold: oversold, overbought: overbought}, nil
}

// Name returns "rsi".
func (s *RSI) Name() string { return "rsi" }

// Warmup returns the lookback period; the index needs a full window of
// deltas.
func (s *RSI) Warmup() int { return s.period }

// Evaluate returns one signal per bar based on the oscillator thresholds.
func (s *RSI) Evaluate(series *domain.Series) []domain.Signal {
	index := indicators.RSI(series.Closes(), s.period)

	signals := make([]domain.Signal, len(index))
	state := domain.Flat
	for i, v := range index {
		if !math.IsNaN(v) {
			switch {
			case v < s.oversold:
				state = domain.Long
			case v > s.overbought:
				state = domain.Flat
			}
		}
		signals[i] = state
	}
	return signals
}

package builtins

import (
	"fmt"
	"math"

	"robosweep/internal/domain"
	"robosweep/internal/indicators"
	"robosweep/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*MACD)(nil)

// MACD implements a convergence-divergence strategy: the indicator line is
// the difference between a fast and a slow EMA, the signal line is an EMA of
// that difference. Long when the indicator crosses above the signal line,
// flat on the reverse crossover.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD builds a MACD strategy from a parameter set with keys
// "fast_period", "slow_period", and "signal_period". The fast period must be
// strictly smaller than the slow period.
func NewMACD(params map[string]float64) (strategy.Strategy, error) {
	fast, err := strategy.IntParam(params, "fast_period")
	if err != nil {
		return nil, err
	}
	slow, err := strategy.IntParam(params, "slow_period")
	if err != nil {
		return nil, err
	}
	signal, err := strategy.IntParam(params, "signal_period")
	if err != nil {
		return nil, err
	}
	if fast <= 0 || fast >= slow {
		return nil, fmt.Errorf("%w: need 0 < fast_period < slow_period, got %d/%d",
			strategy.ErrInvalidParams, fast, slow)
	}
	if signal < 1 {
		return nil, fmt.Errorf("%w: signal_period must be >= 1, got %d",
			strategy.ErrInvalidParams, signal)
	}
	return &MACD{fastPeriod: fast, slowPeriod: slow, signalPeriod: signal}, nil
}

// Name returns "macd".
func (s *MACD) Name() string { return "macd" }

// Warmup returns slow_period+signal_period-2, the first bar at which the
// signal line is defined.
func (s *MACD) Warmup() int { return s.slowPeriod + s.signalPeriod - 2 }

// Evaluate returns one signal per bar based on indicator/signal-line
// crossovers.
func (s *MACD) Evaluate(series *domain.Series) []domain.Signal {
	closes := series.Closes()
	fast := indicators.EMA(closes, s.fastPeriod)
	slow := indicators.EMA(closes, s.slowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i] // NaN until the slow EMA is defined
	}

	// The signal line EMA is computed over the defined suffix of the
	// indicator line, then re-aligned with the bar index space.
	signalLine := make([]float64, len(closes))
	for i := range signalLine {
		signalLine[i] = math.NaN()
	}
	if start := s.slowPeriod - 1; start < len(line) {
		suffix := indicators.EMA(line[start:], s.signalPeriod)
		copy(signalLine[start:], suffix)
	}

	signals := make([]domain.Signal, len(closes))
	state := domain.Flat
	for i := range closes {
		if defined(line[i], signalLine[i]) {
			switch {
			case i == 0 || !defined(line[i-1], signalLine[i-1]):
				if line[i] > signalLine[i] {
					state = domain.Long
				}
			case line[i] > signalLine[i] && line[i-1] <= signalLine[i-1]:
				state = domain.Long
			case line[i] < signalLine[i] && line[i-1] >= signalLine[i-1]:
				state = domain.Flat
			}
		}
		signals[i] = state
	}
	return signals
}

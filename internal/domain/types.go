// Package domain defines the shared value types passed between the data
// provider, strategy evaluators, backtester, and sweep orchestrator.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Signal is a per-bar position signal emitted by a strategy.
type Signal int8

const (
	// Flat means no position should be held at this bar.
	Flat Signal = iota
	// Long means a long position should be held at this bar.
	Long
)

// String returns "FLAT" or "LONG".
func (s Signal) String() string {
	if s == Long {
		return "LONG"
	}
	return "FLAT"
}

// Bar is a single OHLCV price observation at a fixed interval.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	TradeCount int64
	VWAP       float64
}

var (
	// ErrEmptySeries is returned when a series is constructed with no bars.
	ErrEmptySeries = errors.New("empty price series")
	// ErrUnorderedSeries is returned when bar timestamps are not strictly
	// increasing.
	ErrUnorderedSeries = errors.New("bar timestamps not strictly increasing")
)

// Series is an immutable, validated price series for one symbol. Bars are
// ordered by strictly increasing timestamp with no duplicates.
type Series struct {
	Symbol string
	Bars   []Bar
}

// NewSeries validates bar ordering and returns a Series. The bar slice is not
// copied; callers must not mutate it afterwards.
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("series %s: %w", symbol, ErrEmptySeries)
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			return nil, fmt.Errorf("series %s at index %d: %w", symbol, i, ErrUnorderedSeries)
		}
	}
	return &Series{Symbol: symbol, Bars: bars}, nil
}

// Len returns the number of bars in the series.
func (s *Series) Len() int { return len(s.Bars) }

// Closes returns the close prices as a slice aligned with Bars.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i := range s.Bars {
		closes[i] = s.Bars[i].Close
	}
	return closes
}

// Trade is one completed entry+exit pair. Commission is recorded separately
// for each leg.
type Trade struct {
	Symbol          string
	EntryTime       time.Time
	ExitTime        time.Time
	EntryPrice      float64
	ExitPrice       float64
	Shares          int64
	EntryCommission float64
	ExitCommission  float64
}

// NetPnL returns the trade's profit after commissions on both legs.
func (t Trade) NetPnL() float64 {
	gross := (t.ExitPrice - t.EntryPrice) * float64(t.Shares)
	return gross - t.EntryCommission - t.ExitCommission
}

// EquityPoint is one mark-to-market observation of portfolio equity.
type EquityPoint struct {
	Timestamp time.Time
	Equity    float64
}

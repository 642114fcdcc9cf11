package domain

import (
	"errors"
	"testing"
	"time"
)

func mkBars(n int, step time.Duration) []Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]Bar, n)
	for i := range bars {
		bars[i] = Bar{
			Symbol:    "BTC/USD",
			Timestamp: base.Add(time.Duration(i) * step),
			Close:     100 + float64(i),
		}
	}
	return bars
}

func TestNewSeries(t *testing.T) {
	s, err := NewSeries("BTC/USD", mkBars(5, 24*time.Hour))
	if err != nil {
		t.Fatalf("NewSeries returned error: %v", err)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	closes := s.Closes()
	if len(closes) != 5 || closes[0] != 100 || closes[4] != 104 {
		t.Errorf("Closes() = %v, want [100..104]", closes)
	}
}

func TestNewSeriesEmpty(t *testing.T) {
	_, err := NewSeries("BTC/USD", nil)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("NewSeries(nil) error = %v, want ErrEmptySeries", err)
	}
}

func TestNewSeriesDuplicateTimestamp(t *testing.T) {
	bars := mkBars(3, 24*time.Hour)
	bars[2].Timestamp = bars[1].Timestamp
	_, err := NewSeries("BTC/USD", bars)
	if !errors.Is(err, ErrUnorderedSeries) {
		t.Errorf("NewSeries error = %v, want ErrUnorderedSeries", err)
	}
}

func TestNewSeriesOutOfOrder(t *testing.T) {
	bars := mkBars(3, 24*time.Hour)
	bars[0], bars[1] = bars[1], bars[0]
	_, err := NewSeries("BTC/USD", bars)
	if !errors.Is(err, ErrUnorderedSeries) {
		t.Errorf("NewSeries error = %v, want ErrUnorderedSeries", err)
	}
}

func TestTradeNetPnL(t *testing.T) {
	tr := Trade{
		EntryPrice:      100,
		ExitPrice:       110,
		Shares:          10,
		EntryCommission: 1,
		ExitCommission:  1.1,
	}
	want := 10.0*10 - 1 - 1.1
	if got := tr.NetPnL(); got != want {
		t.Errorf("NetPnL() = %v, want %v", got, want)
	}
}

func TestSignalString(t *testing.T) {
	if Flat.String() != "FLAT" || Long.String() != "LONG" {
		t.Errorf("Signal strings = %q/%q, want FLAT/LONG", Flat, Long)
	}
}

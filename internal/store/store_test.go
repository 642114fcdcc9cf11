package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"robosweep/internal/domain"
	"robosweep/internal/sweep"
)

func testBars(n int) []domain.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, n)
	for i := range bars {
		bars[i] = domain.Bar{
			Symbol:     "BTC/USD",
			Timestamp:  base.AddDate(0, 0, i),
			Open:       100 + float64(i),
			High:       101 + float64(i),
			Low:        99 + float64(i),
			Close:      100.5 + float64(i),
			Volume:     1000,
			TradeCount: 42,
			VWAP:       100.25 + float64(i),
		}
	}
	return bars
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	defer cache.Close()
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "BTC/USD", "1d", "1y"); err != nil || ok {
		t.Fatalf("Get on empty cache = ok %v, err %v; want miss", ok, err)
	}

	want := testBars(5)
	if err := cache.Put(ctx, "BTC/USD", "1d", "1y", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "BTC/USD", "1d", "1y")
	if err != nil || !ok {
		t.Fatalf("Get after Put = ok %v, err %v; want hit", ok, err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bars, want %d", len(got), len(want))
	}
	for i := range got {
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("bar %d timestamp = %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
		if got[i].Close != want[i].Close || got[i].TradeCount != want[i].TradeCount {
			t.Errorf("bar %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Different key is a miss.
	if _, ok, _ := cache.Get(ctx, "ETH/USD", "1d", "1y"); ok {
		t.Error("Get for other symbol hit, want miss")
	}
	if _, ok, _ := cache.Get(ctx, "BTC/USD", "1h", "1y"); ok {
		t.Error("Get for other interval hit, want miss")
	}
}

func TestSQLiteCachePutReplaces(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Put(ctx, "BTC/USD", "1d", "1y", testBars(10)); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := cache.Put(ctx, "BTC/USD", "1d", "1y", testBars(3)); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "BTC/USD", "1d", "1y")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	if len(got) != 3 {
		t.Errorf("got %d bars after replace, want 3", len(got))
	}
}

func TestSQLiteCacheTTLExpiry(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	defer cache.Close()
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if err := cache.Put(ctx, "BTC/USD", "1d", "1y", testBars(5)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	cache.now = func() time.Time { return now.Add(30 * time.Minute) }
	if _, ok, _ := cache.Get(ctx, "BTC/USD", "1d", "1y"); !ok {
		t.Error("Get within TTL missed, want hit")
	}

	cache.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, ok, _ := cache.Get(ctx, "BTC/USD", "1d", "1y"); ok {
		t.Error("Get past TTL hit, want miss")
	}
}

func TestWriteSweepParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.parquet")
	records := []sweep.Record{
		{
			Strategy:    "sma_crossover",
			Symbol:      "BTC/USD",
			ParamsDesc:  "short_window=5, long_window=20",
			FinalEquity: 10969.21,
			TotalReturn: 9.6921,
			SharpeRatio: 1.3,
			WinRate:     100,
			MaxDrawdown: 4.2,
			TotalTrades: 1,
		},
		{
			Strategy:     "rsi",
			Symbol:       "ETH/USD",
			ParamsDesc:   "period=14, oversold=30, overbought=70",
			FinalEquity:  9800,
			TotalReturn:  -2,
			TotalTrades:  3,
			OpenPosition: true,
		},
	}

	if err := WriteSweepParquet(path, records); err != nil {
		t.Fatalf("WriteSweepParquet: %v", err)
	}

	rows, err := ReadSweepParquet(path)
	if err != nil {
		t.Fatalf("ReadSweepParquet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Strategy != "sma_crossover" || rows[0].Params != "short_window=5, long_window=20" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].FinalEquity != 10969.21 || rows[0].TotalTrades != 1 {
		t.Errorf("row 0 metrics = %+v", rows[0])
	}
	if !rows[1].OpenPosition {
		t.Error("row 1 OpenPosition = false, want true")
	}
}

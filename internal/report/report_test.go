package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"robosweep/internal/sweep"
)

func sampleOutcome() *sweep.Outcome {
	return &sweep.Outcome{
		Records: []sweep.Record{
			{
				Strategy: "sma_crossover", Symbol: "BTC/USD",
				ParamsDesc:  "short_window=5, long_window=20",
				FinalEquity: 11000, TotalReturn: 10, SharpeRatio: 1.2,
				WinRate: 100, MaxDrawdown: 3.5, TotalTrades: 2,
			},
			{
				Strategy: "rsi", Symbol: "ETH/USD",
				ParamsDesc:  "period=14, oversold=30, overbought=70",
				FinalEquity: 9500, TotalReturn: -5, SharpeRatio: -0.4,
				WinRate: 0, MaxDrawdown: 8, TotalTrades: 1, OpenPosition: true,
			},
		},
		Skipped: []sweep.Skip{
			{Strategy: "macd", Symbol: "BTC/USD", ParamsDesc: "fast_period=30, slow_period=21, signal_period=9", Reason: "invalid strategy parameters"},
		},
	}
}

func TestConsoleReport(t *testing.T) {
	var b strings.Builder
	if err := Console(&b, sampleOutcome(), 10); err != nil {
		t.Fatalf("Console: %v", err)
	}
	got := b.String()

	for _, want := range []string{
		"2 results, 1 skipped",
		"Top by total return:",
		"Top by Sharpe ratio:",
		"By strategy:",
		"By symbol:",
		"Skipped combinations:",
		"sma_crossover",
		"short_window=5, long_window=20",
		"invalid strategy parameters",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}

	// The open position marker rides on the trade count.
	if !strings.Contains(got, "1*") {
		t.Errorf("report missing open-position marker\n%s", got)
	}
}

func TestConsoleReportEmpty(t *testing.T) {
	var b strings.Builder
	if err := Console(&b, &sweep.Outcome{}, 10); err != nil {
		t.Fatalf("Console: %v", err)
	}
	if !strings.Contains(b.String(), "No results produced.") {
		t.Errorf("empty report = %q", b.String())
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sweep.csv")
	if err := WriteCSV(path, sampleOutcome().Records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	if rows[0][0] != "strategy" || rows[0][3] != "final_equity" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "sma_crossover" || rows[1][3] != "11000.00" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][9] != "true" {
		t.Errorf("row 2 open_position = %q, want true", rows[2][9])
	}
}

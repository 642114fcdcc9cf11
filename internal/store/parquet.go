package store

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"robosweep/internal/sweep"
)

// SweepRow is the Parquet schema for one sweep record. Parameter sets are
// stored in their human-readable form so rows stay flat across strategy
// families with different parameter names.
type SweepRow struct {
	Strategy     string  `parquet:"strategy"`
	Symbol       string  `parquet:"symbol"`
	Params       string  `parquet:"params"`
	FinalEquity  float64 `parquet:"final_equity"`
	TotalReturn  float64 `parquet:"total_return_pct"`
	SharpeRatio  float64 `parquet:"sharpe_ratio"`
	WinRate      float64 `parquet:"win_rate_pct"`
	MaxDrawdown  float64 `parquet:"max_drawdown_pct"`
	TotalTrades  int64   `parquet:"total_trades"`
	OpenPosition bool    `parquet:"open_position"`
}

// WriteSweepParquet writes the sweep records to a Parquet file at path,
// creating parent directories as needed.
func WriteSweepParquet(path string, records []sweep.Record) error {
	rows := make([]SweepRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, SweepRow{
			Strategy:     r.Strategy,
			Symbol:       r.Symbol,
			Params:       r.ParamsDesc,
			FinalEquity:  r.FinalEquity,
			TotalReturn:  r.TotalReturn,
			SharpeRatio:  r.SharpeRatio,
			WinRate:      r.WinRate,
			MaxDrawdown:  r.MaxDrawdown,
			TotalTrades:  int64(r.TotalTrades),
			OpenPosition: r.OpenPosition,
		})
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, rows)
}

// ReadSweepParquet reads previously exported sweep rows from path.
func ReadSweepParquet(path string) ([]SweepRow, error) {
	return parquet.ReadFile[SweepRow](path)
}

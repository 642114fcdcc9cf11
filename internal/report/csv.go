package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"robosweep/internal/sweep"
)

// csvHeader is the column order of the CSV export.
var csvHeader = []string{
	"strategy", "symbol", "params",
	"final_equity", "total_return_pct", "sharpe_ratio",
	"win_rate_pct", "max_drawdown_pct", "total_trades", "open_position",
}

// WriteCSV writes every sweep record to a CSV file at path, creating parent
// directories as needed.
func WriteCSV(path string, records []sweep.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Strategy,
			r.Symbol,
			r.ParamsDesc,
			strconv.FormatFloat(r.FinalEquity, 'f', 2, 64),
			strconv.FormatFloat(r.TotalReturn, 'f', 4, 64),
			strconv.FormatFloat(r.SharpeRatio, 'f', 4, 64),
			strconv.FormatFloat(r.WinRate, 'f', 2, 64),
			strconv.FormatFloat(r.MaxDrawdown, 'f', 4, 64),
			strconv.Itoa(r.TotalTrades),
			strconv.FormatBool(r.OpenPosition),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Package report renders sweep results: a console summary with ranking
// tables, and a CSV export of every record.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"robosweep/internal/sweep"
)

// Console writes a human-readable sweep summary to w: the top performers by
// return and by Sharpe ratio, per-strategy and per-symbol aggregates, and any
// skipped combinations. topN limits the ranking tables; <=0 shows everything.
func Console(w io.Writer, out *sweep.Outcome, topN int) error {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No results produced.")
		return printSkips(w, out.Skipped)
	}

	fmt.Fprintf(w, "Sweep complete: %d results, %d skipped\n", len(out.Records), len(out.Skipped))

	fmt.Fprintf(w, "\nTop by total return:\n")
	if err := printRecords(w, out.TopByReturn(topN)); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTop by Sharpe ratio:\n")
	if err := printRecords(w, out.TopBySharpe(topN)); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBy strategy:\n")
	if err := printSummaries(w, out.SummaryByStrategy()); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBy symbol:\n")
	if err := printSummaries(w, out.SummaryBySymbol()); err != nil {
		return err
	}

	return printSkips(w, out.Skipped)
}

func printRecords(w io.Writer, records []sweep.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tSYMBOL\tPARAMS\tRETURN%\tSHARPE\tWIN%\tMAXDD%\tTRADES")
	for _, r := range records {
		open := ""
		if r.OpenPosition {
			open = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%.1f\t%.2f\t%d%s\n",
			r.Strategy, r.Symbol, r.ParamsDesc,
			r.TotalReturn, r.SharpeRatio, r.WinRate, r.MaxDrawdown, r.TotalTrades, open)
	}
	return tw.Flush()
}

func printSummaries(w io.Writer, summaries []sweep.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tCOUNT\tMEAN%\tMEDIAN%\tBEST%\tMEAN SHARPE\tBEST SHARPE\tMEAN WIN%\tMEAN TRADES")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\t%.1f\n",
			s.Group, s.Count,
			s.MeanReturn, s.MedianReturn, s.BestReturn,
			s.MeanSharpe, s.BestSharpe, s.MeanWinRate, s.MeanTrades)
	}
	return tw.Flush()
}

func printSkips(w io.Writer, skips []sweep.Skip) error {
	if len(skips) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nSkipped combinations:\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tSYMBOL\tPARAMS\tREASON")
	for _, s := range skips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", orDash(s.Strategy), orDash(s.Symbol), orDash(s.ParamsDesc), s.Reason)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

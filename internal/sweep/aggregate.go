package sweep

import "sort"

// Summary holds aggregate statistics for one group of records (a strategy
// family or an instrument).
type Summary struct {
	Group        string
	Count        int
	MeanReturn   float64
	MedianReturn float64
	BestReturn   float64
	MeanSharpe   float64
	BestSharpe   float64
	MeanWinRate  float64
	MeanTrades   float64
}

// TopByReturn returns the n best records by total return, descending. Ties
// keep sweep order.
func (o *Outcome) TopByReturn(n int) []Record {
	return o.topBy(n, func(r *Record) float64 { return r.TotalReturn })
}

// TopBySharpe returns the n best records by Sharpe ratio, descending. Ties
// keep sweep order.
func (o *Outcome) TopBySharpe(n int) []Record {
	return o.topBy(n, func(r *Record) float64 { return r.SharpeRatio })
}

func (o *Outcome) topBy(n int, metric func(*Record) float64) []Record {
	ranked := make([]Record, len(o.Records))
	copy(ranked, o.Records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(&ranked[i]) > metric(&ranked[j])
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// SummaryByStrategy aggregates records per strategy family, sorted by family
// name.
func (o *Outcome) SummaryByStrategy() []Summary {
	return o.summarize(func(r *Record) string { return r.Strategy })
}

// SummaryBySymbol aggregates records per instrument, sorted by symbol.
func (o *Outcome) SummaryBySymbol() []Summary {
	return o.summarize(func(r *Record) string { return r.Symbol })
}

func (o *Outcome) summarize(groupOf func(*Record) string) []Summary {
	groups := make(map[string][]int)
	for i := range o.Records {
		g := groupOf(&o.Records[i])
		groups[g] = append(groups[g], i)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		indices := groups[name]
		s := Summary{Group: name, Count: len(indices)}

		returns := make([]float64, 0, len(indices))
		first := true
		for _, idx := range indices {
			r := &o.Records[idx]
			returns = append(returns, r.TotalReturn)
			s.MeanReturn += r.TotalReturn
			s.MeanSharpe += r.SharpeRatio
			s.MeanWinRate += r.WinRate
			s.MeanTrades += float64(r.TotalTrades)
			if first || r.TotalReturn > s.BestReturn {
				s.BestReturn = r.TotalReturn
			}
			if first || r.SharpeRatio > s.BestSharpe {
				s.BestSharpe = r.SharpeRatio
			}
			first = false
		}
		n := float64(len(indices))
		s.MeanReturn /= n
		s.MeanSharpe /= n
		s.MeanWinRate /= n
		s.MeanTrades /= n
		s.MedianReturn = median(returns)

		summaries = append(summaries, s)
	}
	return summaries
}

// median returns the middle value of the input, averaging the two middle
// values for even lengths. The input is sorted in place.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

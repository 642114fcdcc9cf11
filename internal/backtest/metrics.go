package backtest

import (
	"math"

	"robosweep/internal/domain"
)

// fillMetrics derives the summary metrics from the equity curve and realized
// trades. Every degenerate division (no trades, zero variance, zero peak)
// resolves to 0 so that no NaN or Inf reaches aggregation.
func (r *Result) fillMetrics(initialCapital, barsPerYear float64) {
	r.FinalEquity = initialCapital
	if n := len(r.EquityCurve); n > 0 {
		r.FinalEquity = r.EquityCurve[n-1].Equity
	}
	r.TotalReturn = (r.FinalEquity/initialCapital - 1) * 100

	if len(r.Trades) > 0 {
		wins := 0
		for _, t := range r.Trades {
			if t.NetPnL() > 0 {
				wins++
			}
		}
		r.WinRate = float64(wins) / float64(len(r.Trades)) * 100
	}

	r.MaxDrawdown = maxDrawdown(r.EquityCurve)
	r.SharpeRatio = sharpe(r.EquityCurve, barsPerYear)
}

// maxDrawdown returns the largest percentage decline from a running equity
// peak, in [0, 100].
func maxDrawdown(curve []domain.EquityPoint) float64 {
	var peak, maxDD float64
	for i := range curve {
		eq := curve[i].Equity
		if eq > peak {
			peak = eq
		}
		if peak > 0 {
			if dd := (peak - eq) / peak * 100; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpe returns the annualized ratio of mean per-bar return to its sample
// standard deviation, or 0 when the curve is too short or has zero variance.
func sharpe(curve []domain.EquityPoint, barsPerYear float64) float64 {
	if len(curve) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev <= 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, curve[i].Equity/prev-1)
	}

	var mean float64
	for _, v := range returns {
		mean += v
	}
	mean /= float64(len(returns))

	if len(returns) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range returns {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(returns)-1))
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(barsPerYear)
}

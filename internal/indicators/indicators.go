// Package indicators implements the rolling indicator math used by the
// built-in strategies. Every function returns a slice aligned 1:1 with its
// input; positions inside the warm-up window hold NaN so callers can treat
// "indicator undefined" uniformly.
package indicators

import "math"

// SMA computes the simple moving average over the trailing window of length
// period.
func SMA(values []float64, period int) []float64 {
	if period <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	var sum float64
	for i := range values {
		sum += values[i]
		if i >= period {
			sum -= values[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}

// EMA computes the exponential moving average with smoothing 2/(period+1),
// seeded with the SMA of the first period values.
func EMA(values []float64, period int) []float64 {
	if period <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	if len(values) < period {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	var seed float64
	for i := 0; i < period; i++ {
		seed += values[i]
		if i < period-1 {
			out[i] = math.NaN()
		}
	}
	out[period-1] = seed / float64(period)
	k := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return out
}

// MeanStd computes the rolling mean and population standard deviation over
// the trailing window of length period.
func MeanStd(values []float64, period int) (mean, std []float64) {
	if period <= 0 {
		return nil, nil
	}
	mean = make([]float64, len(values))
	std = make([]float64, len(values))
	var sum, sumSq float64
	for i := range values {
		sum += values[i]
		sumSq += values[i] * values[i]
		if i >= period {
			sum -= values[i-period]
			sumSq -= values[i-period] * values[i-period]
		}
		if i < period-1 {
			mean[i] = math.NaN()
			std[i] = math.NaN()
			continue
		}
		m := sum / float64(period)
		v := sumSq/float64(period) - m*m
		if v < 0 {
			// Guard against negative variance from float cancellation.
			v = 0
		}
		mean[i] = m
		std[i] = math.Sqrt(v)
	}
	return mean, std
}

// RSI computes a bounded momentum index in [0, 100] from the rolling mean of
// gains versus the rolling mean of losses over the trailing window of length
// period. Degenerate windows resolve to defined values: all gains -> 100, all
// losses -> 0, and a fully flat window -> 50.
func RSI(values []float64, period int) []float64 {
	if period <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := range values {
		if i == 0 {
			continue
		}
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := range values {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		// The first delta exists at index 1, so a full window of period
		// deltas is available from index period onwards.
		if i < period {
			out[i] = math.NaN()
			continue
		}
		switch {
		case lossSum == 0 && gainSum == 0:
			out[i] = 50
		case lossSum == 0:
			out[i] = 100
		case gainSum == 0:
			out[i] = 0
		default:
			rs := gainSum / lossSum
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

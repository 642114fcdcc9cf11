package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// ParsePeriod converts a lookback period string ("1y", "6mo", "30d", "2wk")
// into the start time relative to now.
func ParsePeriod(period string, now time.Time) (time.Time, error) {
	var suffix string
	switch {
	case strings.HasSuffix(period, "mo"):
		suffix = "mo"
	case strings.HasSuffix(period, "wk"):
		suffix = "wk"
	case strings.HasSuffix(period, "y"):
		suffix = "y"
	case strings.HasSuffix(period, "d"):
		suffix = "d"
	default:
		return time.Time{}, fmt.Errorf("unrecognized period %q", period)
	}

	n, err := strconv.Atoi(strings.TrimSuffix(period, suffix))
	if err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("unrecognized period %q", period)
	}

	switch suffix {
	case "y":
		return now.AddDate(-n, 0, 0), nil
	case "mo":
		return now.AddDate(0, -n, 0), nil
	case "wk":
		return now.AddDate(0, 0, -7*n), nil
	default:
		return now.AddDate(0, 0, -n), nil
	}
}

// IntervalTimeFrame maps an interval string to the Alpaca bar timeframe.
func IntervalTimeFrame(interval string) (marketdata.TimeFrame, error) {
	switch interval {
	case "1d":
		return marketdata.OneDay, nil
	case "1h":
		return marketdata.OneHour, nil
	case "1m":
		return marketdata.OneMin, nil
	case "1wk":
		return marketdata.NewTimeFrame(1, marketdata.Week), nil
	default:
		return marketdata.TimeFrame{}, fmt.Errorf("unrecognized interval %q", interval)
	}
}

// BarsPerYear returns the Sharpe annualization base for an interval. Daily
// bars use the conventional 252 trading days; unknown intervals fall back to
// daily.
func BarsPerYear(interval string) float64 {
	switch interval {
	case "1h":
		return 252 * 24
	case "1m":
		return 252 * 24 * 60
	case "1wk":
		return 52
	default:
		return 252
	}
}

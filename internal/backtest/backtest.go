// Package backtest simulates capital, position, and equity over a price
// series driven by a position-signal sequence, and derives the performance
// metrics used to rank sweep results.
package backtest

import (
	"errors"
	"fmt"
	"math"

	"robosweep/internal/domain"
)

var (
	// ErrSignalLength is returned when the signal sequence is not aligned
	// 1:1 with the price series.
	ErrSignalLength = errors.New("signal length does not match series length")
	// ErrInvalidCapital is returned for a non-positive initial capital.
	ErrInvalidCapital = errors.New("initial capital must be positive")
	// ErrInvalidCommission is returned for a negative commission rate.
	ErrInvalidCommission = errors.New("commission rate must not be negative")
)

// Result holds the simulated outcome and summary metrics of one backtest.
// FinalEquity marks any open position to market at the last close; only
// realized trades count toward TotalTrades and WinRate.
type Result struct {
	FinalEquity  float64
	Trades       []domain.Trade
	EquityCurve  []domain.EquityPoint
	TotalReturn  float64 // percent
	SharpeRatio  float64 // annualized
	WinRate      float64 // percent of realized trades
	MaxDrawdown  float64 // percent decline from peak equity
	TotalTrades  int
	OpenPosition bool
}

// Backtester replays a signal sequence over historical bars. It holds at most
// one long position, sizes entries to the available cash, and charges a flat
// commission on both legs.
type Backtester struct {
	initialCapital float64
	commission     float64
	barsPerYear    float64
}

// New creates a Backtester. barsPerYear scales the Sharpe ratio to an annual
// figure (252 for daily bars).
func New(initialCapital, commission, barsPerYear float64) (*Backtester, error) {
	if initialCapital <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCapital, initialCapital)
	}
	if commission < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommission, commission)
	}
	if barsPerYear <= 0 {
		barsPerYear = 252
	}
	return &Backtester{
		initialCapital: initialCapital,
		commission:     commission,
		barsPerYear:    barsPerYear,
	}, nil
}

// Run walks the bars in order, entering on Flat->Long transitions and exiting
// on Long->Flat transitions at the bar close. Equity is marked to market at
// every bar. An open position at the end of the series is not force-closed.
func (bt *Backtester) Run(series *domain.Series, signals []domain.Signal) (*Result, error) {
	if len(signals) != series.Len() {
		return nil, fmt.Errorf("%s: %w (%d signals, %d bars)",
			series.Symbol, ErrSignalLength, len(signals), series.Len())
	}

	cash := bt.initialCapital
	var shares int64
	var open domain.Trade

	trades := []domain.Trade{}
	curve := make([]domain.EquityPoint, series.Len())

	for i := range series.Bars {
		bar := &series.Bars[i]
		price := bar.Close

		switch {
		case signals[i] == domain.Long && shares == 0:
			// Size to the cash available after the entry commission. A
			// zero-share entry is skipped, not recorded.
			qty := int64(math.Floor(cash / (price * (1 + bt.commission))))
			if qty > 0 {
				cost := price * float64(qty)
				fee := cost * bt.commission
				cash -= cost + fee
				shares = qty
				open = domain.Trade{
					Symbol:          series.Symbol,
					EntryTime:       bar.Timestamp,
					EntryPrice:      price,
					Shares:          qty,
					EntryCommission: fee,
				}
			}

		case signals[i] == domain.Flat && shares > 0:
			proceeds := price * float64(shares)
			fee := proceeds * bt.commission
			cash += proceeds - fee
			open.ExitTime = bar.Timestamp
			open.ExitPrice = price
			open.ExitCommission = fee
			trades = append(trades, open)
			shares = 0
		}

		curve[i] = domain.EquityPoint{
			Timestamp: bar.Timestamp,
			Equity:    cash + float64(shares)*price,
		}
	}

	res := &Result{
		Trades:       trades,
		EquityCurve:  curve,
		TotalTrades:  len(trades),
		OpenPosition: shares > 0,
	}
	res.fillMetrics(bt.initialCapital, bt.barsPerYear)
	return res, nil
}

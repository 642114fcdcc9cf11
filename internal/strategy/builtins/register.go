package builtins

import "robosweep/internal/strategy"

// Register adds all built-in strategy families to the registry with their
// canonical parameter orders.
func Register(r *strategy.Registry) {
	r.Register("sma_crossover", []string{"short_window", "long_window"}, NewSMACross)
	r.Register("rsi", []string{"period", "oversold", "overbought"}, NewRSI)
	r.Register("macd", []string{"fast_period", "slow_period", "signal_period"}, NewMACD)
	r.Register("bollinger_bands", []string{"period", "std_dev"}, NewBollinger)
}

// NewRegistry returns a registry pre-populated with the built-in families.
func NewRegistry() *strategy.Registry {
	r := strategy.NewRegistry()
	Register(r)
	return r
}

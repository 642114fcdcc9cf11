// Package strategy defines the Strategy interface for signal-generating
// trading strategies and provides a Registry mapping family names to
// parameterized factories.
package strategy

import (
	"errors"
	"fmt"
	"sort"

	"robosweep/internal/domain"
)

// Strategy maps a price series to a position-signal sequence. Implementations
// are pure functions of the series and their parameters: no hidden state,
// deterministic output.
type Strategy interface {
	// Name returns the strategy family identifier, e.g. "sma_crossover".
	Name() string

	// Warmup returns the number of leading bars for which the strategy's
	// indicators are undefined. Signals within the warm-up are always Flat.
	Warmup() int

	// Evaluate returns one signal per bar, aligned 1:1 with series.Bars.
	Evaluate(series *domain.Series) []domain.Signal
}

var (
	// ErrInvalidParams indicates a parameter set that fails a family's
	// validity constraints.
	ErrInvalidParams = errors.New("invalid strategy parameters")

	// ErrUnknownStrategy indicates a family name with no registered factory.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Factory builds a configured Strategy from a parameter set, validating
// family-specific constraints before any simulation runs.
type Factory func(params map[string]float64) (Strategy, error)

// Param returns the named parameter or an ErrInvalidParams error when it is
// missing.
func Param(params map[string]float64, name string) (float64, error) {
	v, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrInvalidParams, name)
	}
	return v, nil
}

// IntParam returns the named parameter as an int, rejecting non-integral
// values.
func IntParam(params map[string]float64, name string) (int, error) {
	v, err := Param(params, name)
	if err != nil {
		return 0, err
	}
	n := int(v)
	if float64(n) != v {
		return 0, fmt.Errorf("%w: %q must be an integer, got %v", ErrInvalidParams, name, v)
	}
	return n, nil
}

// family pairs a factory with the canonical parameter order used for grid
// expansion and record rendering.
type family struct {
	paramNames []string
	factory    Factory
}

// Registry holds a named collection of strategy families for lookup and
// enumeration.
type Registry struct {
	families map[string]family
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		families: make(map[string]family),
	}
}

// Register adds a strategy family to the registry. paramNames is the family's
// canonical parameter order.
func (r *Registry) Register(name string, paramNames []string, f Factory) {
	r.families[name] = family{paramNames: paramNames, factory: f}
}

// Create builds a configured strategy for the named family. It returns
// ErrUnknownStrategy for unregistered names and ErrInvalidParams when the
// parameter set fails the family's constraints.
func (r *Registry) Create(name string, params map[string]float64) (Strategy, error) {
	fam, ok := r.families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return fam.factory(params)
}

// ParamNames returns the canonical parameter order for the named family. The
// second return value indicates whether the family is registered.
func (r *Registry) ParamNames(name string) ([]string, bool) {
	fam, ok := r.families[name]
	if !ok {
		return nil, false
	}
	return fam.paramNames, true
}

// List returns a sorted slice of all registered family names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

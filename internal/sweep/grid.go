// Package sweep expands parameter grids and orchestrates backtests across
// every (strategy family, parameter set, instrument) combination, collecting
// ranked and aggregated results.
package sweep

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyRange indicates a parameter with zero candidate values, or a
	// parameter required by the family that the range spec omits.
	ErrEmptyRange = errors.New("empty parameter range")
	// ErrUnknownParam indicates a range entry for a parameter the family
	// does not define.
	ErrUnknownParam = errors.New("unknown parameter")
)

// ParamSet is one concrete parameter combination for a strategy family.
type ParamSet map[string]float64

// Describe renders the set as "name=value, ..." following the family's
// canonical parameter order, so identical sets always render identically.
func (p ParamSet) Describe(order []string) string {
	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, name+"="+strconv.FormatFloat(p[name], 'g', -1, 64))
	}
	return strings.Join(parts, ", ")
}

// ExpandGrid produces the full Cartesian product of the candidate values, one
// ParamSet per combination, ordered lexicographically over the family's
// canonical parameter order. Every parameter in order must have at least one
// candidate, and ranges must not name parameters outside order.
func ExpandGrid(ranges map[string][]float64, order []string) ([]ParamSet, error) {
	for _, name := range order {
		if len(ranges[name]) == 0 {
			return nil, fmt.Errorf("%w for %q", ErrEmptyRange, name)
		}
	}
	for name := range ranges {
		known := false
		for _, want := range order {
			if name == want {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w %q", ErrUnknownParam, name)
		}
	}

	total := 1
	for _, name := range order {
		total *= len(ranges[name])
	}

	sets := make([]ParamSet, 0, total)
	idx := make([]int, len(order))
	for {
		set := make(ParamSet, len(order))
		for i, name := range order {
			set[name] = ranges[name][idx[i]]
		}
		sets = append(sets, set)

		// Odometer increment, last parameter fastest.
		i := len(order) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(ranges[order[i]]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return sets, nil
		}
	}
}

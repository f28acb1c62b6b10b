// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
)

// IterPath returns the order in which Multifit visits the navigation
// positions of shape (natural order, first axis fastest), as flat indices.
//
// "flyback" restarts every row at index 0. "serpentine" reverses axis k
// whenever the indices of the slower axes sum to an odd number, so
// consecutive positions are always neighbours.
func IterPath(shape []int, path string) ([]int, error) {
	if path != IterFlyback && path != IterSerpentine {
		return nil, fmt.Errorf("IterPath %q: %w", path, ErrIterPath)
	}
	n := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("IterPath: negative size %d: %w", s, ErrShape)
		}
		n *= s
	}
	out := make([]int, 0, n)
	counter := make([]int, len(shape))
	for c := 0; c < n; c++ {
		flat, stride, parity := 0, 1, 0
		eff := make([]int, len(shape))
		for k := len(shape) - 1; k >= 0; k-- {
			eff[k] = counter[k]
			if path == IterSerpentine && parity%2 == 1 {
				eff[k] = shape[k] - 1 - counter[k]
			}
			parity += eff[k]
		}
		for k, s := range shape {
			flat += eff[k] * stride
			stride *= s
		}
		out = append(out, flat)

		for k := range counter {
			counter[k]++
			if counter[k] < shape[k] {
				break
			}
			counter[k] = 0
		}
	}

	return out, nil
}

// Multifit fits every navigation position in IterPath order.
//
// At each position the stored values are fetched (only the fixed ones with
// WithFetchOnlyFixed), the model is fitted and the result stored, so free
// parameters start from the previous position's optimum. An unset
// iteration path warns and falls back to "flyback".
// The first failing position stops the run; earlier positions keep their
// stored results.
func (m *Model) Multifit(opts ...FitOption) error {
	cfg := gatherFitOptions(opts...)
	if cfg.iterPath == "" {
		m.logger.Warn("'iterpath' default will change from 'flyback' to 'serpentine'. " +
			"Use WithIterPath to silence this warning.")
		cfg.iterPath = IterFlyback
	}
	order, err := IterPath(m.signal.Axes().NavigationShape(), cfg.iterPath)
	if err != nil {
		return modelErrorf("Multifit", err)
	}
	cfg, _, err = m.resolve(cfg)
	if err != nil {
		return modelErrorf("Multifit", err)
	}

	for _, i := range order {
		m.index = i
		m.FetchStoredValues(cfg.fetchOnlyFixed)
		if err := m.fit(cfg); err != nil {
			return fmt.Errorf("Multifit at index %d: %w", i, err)
		}
		m.StoreCurrentValues()
	}

	return nil
}

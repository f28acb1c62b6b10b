// SPDX-License-Identifier: MIT

package axes

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/hyperaxes/units"
)

// DefaultCompactFactor scales the axis span (scale*size) before the compact
// prefix is chosen, so a quarter of the axis reads in the chosen unit.
const DefaultCompactFactor = 0.25

const panicCompactFactorInvalid = "axes: WithCompactFactor: factor must be finite and > 0"

// Option configures axes, conversions and managers.
type Option func(*options)

type options struct {
	registry      *units.Registry
	logger        *zap.Logger
	compactFactor float64
}

// WithRegistry sets the unit registry. nil is ignored.
func WithRegistry(r *units.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the logger warnings go to. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCompactFactor overrides DefaultCompactFactor.
// Panics when f is not a finite positive number.
func WithCompactFactor(f float64) Option {
	if !(f > 0) || math.IsInf(f, 1) {
		panic(panicCompactFactorInvalid)
	}

	return func(o *options) { o.compactFactor = f }
}

// gatherOptions applies setters over the defaults, last writer wins.
func gatherOptions(opts ...Option) options {
	o := options{
		registry:      units.Default(),
		logger:        zap.NewNop(),
		compactFactor: DefaultCompactFactor,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// reapply turns resolved options back into a setter list for child axes.
func (o options) reapply() []Option {
	return []Option{WithRegistry(o.registry), WithLogger(o.logger), WithCompactFactor(o.compactFactor)}
}

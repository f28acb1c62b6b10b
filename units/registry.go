// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/unit"
)

// Registry resolves unit symbols into prefix, base unit and power.
// It is immutable after NewRegistry returns and safe for concurrent use.
type Registry struct {
	bases    map[string]*baseUnit
	prefixes []string // prefix spellings, longest first
	canon    map[string]prefix
}

// RegistryOption customises a Registry at construction.
type RegistryOption func(*Registry)

// WithUnit registers an extra base unit. si is the value of one unit in
// coherent SI units with the given dimensions; prefixable controls whether
// "k"+symbol, "n"+symbol, ... resolve as well.
// Panics on an empty symbol or a non-positive si value (programmer error).
func WithUnit(symbol string, si float64, dims unit.Dimensions, prefixable bool) RegistryOption {
	if symbol == "" || !(si > 0) || math.IsInf(si, 0) {
		panic("units: WithUnit: symbol must be non-empty and si finite and positive")
	}

	return func(r *Registry) {
		r.bases[symbol] = &baseUnit{symbol: symbol, si: si, dims: dims, prefixable: prefixable}
	}
}

// NewRegistry returns a registry seeded with the default SI table.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		bases: make(map[string]*baseUnit),
		canon: make(map[string]prefix, len(siPrefixes)+len(prefixAliases)),
	}
	for _, b := range defaultBaseUnits() {
		b := b
		r.bases[b.symbol] = &b
	}
	for _, p := range siPrefixes {
		if p.symbol != "" {
			r.canon[p.symbol] = p
		}
	}
	for alias, target := range prefixAliases {
		r.canon[alias] = r.canon[target]
	}
	for spelling := range r.canon {
		r.prefixes = append(r.prefixes, spelling)
	}
	// longest first so "da" wins over "d"; ties broken lexically for determinism
	sort.Slice(r.prefixes, func(i, j int) bool {
		if len(r.prefixes[i]) != len(r.prefixes[j]) {
			return len(r.prefixes[i]) > len(r.prefixes[j])
		}
		return r.prefixes[i] < r.prefixes[j]
	})
	for _, opt := range opts {
		opt(r)
	}

	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared default registry.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })

	return defaultRegistry
}

// term is a resolved unit: prefix·base raised to power (+1 or -1).
type term struct {
	prefix prefix
	base   *baseUnit
	power  int
}

// format renders the canonical short symbol.
func (t term) format() string {
	s := t.prefix.symbol + t.base.symbol
	if t.power < 0 {
		return "1 / " + s
	}

	return s
}

// quantity returns the gonum unit equal to one t.
func (t term) quantity() *unit.Unit {
	u := unit.New(math.Pow10(t.prefix.exp)*t.base.si, t.base.dims)
	if t.power < 0 {
		return unit.New(1, unit.Dimensions{}).Div(u)
	}

	return u
}

// resolve parses u. Undefined yields ErrUndefinedUnit, anything not
// understood yields ErrUnsupportedUnit.
func (r *Registry) resolve(u Unit) (term, error) {
	if !u.IsDefined() {
		return term{}, ErrUndefinedUnit
	}
	s := strings.TrimSpace(u.Symbol())
	power := 1
	switch {
	case strings.HasPrefix(s, "1") && strings.HasPrefix(strings.TrimSpace(s[1:]), "/"):
		s = strings.TrimSpace(strings.TrimSpace(s[1:])[1:])
		power = -1
	case strings.HasSuffix(s, "^-1"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "^-1"))
		power = -1
	case strings.HasSuffix(s, "**-1"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "**-1"))
		power = -1
	}
	if s == "" || strings.ContainsAny(s, " /*^") {
		return term{}, unsupportedf(u.Symbol())
	}
	if b, ok := r.bases[s]; ok {
		return term{prefix: prefix{}, base: b, power: power}, nil
	}
	for _, spelling := range r.prefixes {
		if !strings.HasPrefix(s, spelling) {
			continue
		}
		if b, ok := r.bases[s[len(spelling):]]; ok && b.prefixable {
			return term{prefix: r.canon[spelling], base: b, power: power}, nil
		}
	}

	return term{}, unsupportedf(u.Symbol())
}

// Check returns nil when u can take part in conversions, ErrUndefinedUnit
// for Undefined and a wrapped ErrUnsupportedUnit otherwise.
func (r *Registry) Check(u Unit) error {
	_, err := r.resolve(u)

	return err
}

// IsConvertible reports whether u is understood by the registry.
func (r *Registry) IsConvertible(u Unit) bool {
	return r.Check(u) == nil
}

// Normalize returns the canonical short form of u ("um" -> "µm", "1/nm" -> "1 / nm").
func (r *Registry) Normalize(u Unit) (Unit, error) {
	t, err := r.resolve(u)
	if err != nil {
		return u, err
	}

	return Of(t.format()), nil
}

// Dimensions returns the physical dimensions of u.
func (r *Registry) Dimensions(u Unit) (unit.Dimensions, error) {
	t, err := r.resolve(u)
	if err != nil {
		return nil, err
	}

	return t.quantity().Dimensions(), nil
}

// Compatible reports whether a and b are both resolvable and share dimensions.
func (r *Registry) Compatible(a, b Unit) bool {
	ta, err := r.resolve(a)
	if err != nil {
		return false
	}
	tb, err := r.resolve(b)
	if err != nil {
		return false
	}

	return unit.DimensionsMatch(ta.quantity(), tb.quantity())
}

// Factor returns the number of `to` units in one `from` unit.
//
// Units sharing a base unit convert through an exact power of ten so that
// round trips such as m -> µm -> m are bit-stable.
func (r *Registry) Factor(from, to Unit) (float64, error) {
	tf, err := r.resolve(from)
	if err != nil {
		return 0, err
	}
	tt, err := r.resolve(to)
	if err != nil {
		return 0, err
	}
	qf, qt := tf.quantity(), tt.quantity()
	if !unit.DimensionsMatch(qf, qt) {
		return 0, fmt.Errorf("%s -> %s: %w", from, to, ErrIncompatibleUnits)
	}
	if tf.base == tt.base && tf.power == tt.power {
		return math.Pow10((tf.prefix.exp - tt.prefix.exp) * tf.power), nil
	}

	return qf.Value() / qt.Value(), nil
}

// Convert expresses v (in from units) in to units.
func (r *Registry) Convert(v float64, from, to Unit) (float64, error) {
	f, err := r.Factor(from, to)
	if err != nil {
		return 0, err
	}

	return v * f, nil
}

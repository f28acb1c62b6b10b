// SPDX-License-Identifier: MIT

package units

import "gopkg.in/yaml.v3"

// undefinedText is how Undefined prints. It is not a valid symbol.
const undefinedText = "<undefined>"

// Unit is a unit symbol as written by the caller, e.g. "m", "1/µm" or "keV".
//
// The zero value is Undefined. Of keeps the symbol verbatim; normalisation to
// the short form ("1 / nm") only happens when a Registry converts to it.
// Unit is comparable and safe to use as a map key.
type Unit struct {
	symbol  string
	defined bool
}

// Undefined is the "no unit assigned" sentinel. It never takes part in conversion.
var Undefined = Unit{}

// Of returns the defined unit with the given symbol. Of("") is defined and
// differs from Undefined.
func Of(symbol string) Unit {
	return Unit{symbol: symbol, defined: true}
}

// IsDefined reports whether u is anything other than Undefined.
func (u Unit) IsDefined() bool {
	return u.defined
}

// Symbol returns the raw symbol; "" for Undefined.
func (u Unit) Symbol() string {
	return u.symbol
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	if !u.defined {
		return undefinedText
	}

	return u.symbol
}

// MarshalYAML encodes Undefined as null and any other unit as its symbol.
func (u Unit) MarshalYAML() (interface{}, error) {
	if !u.defined {
		return nil, nil
	}

	return u.symbol, nil
}

// UnmarshalYAML decodes null (or a missing key) as Undefined.
func (u *Unit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*u = Undefined
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*u = Of(s)

	return nil
}

// SPDX-License-Identifier: MIT

package axes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/hyperaxes/units"
)

type selectionKind int

const (
	selectAll selectionKind = iota
	selectNavigation
	selectSignal
	selectIndex
	selectName
)

// Selection picks the axes a batch conversion acts on.
type Selection struct {
	kind  selectionKind
	index int
	name  string
}

// SelectAll selects navigation ++ signal.
func SelectAll() Selection { return Selection{kind: selectAll} }

// SelectNavigation selects every navigation axis.
func SelectNavigation() Selection { return Selection{kind: selectNavigation} }

// SelectSignal selects every signal axis.
func SelectSignal() Selection { return Selection{kind: selectSignal} }

// SelectIndex selects the single axis Manager.At(i) returns.
func SelectIndex(i int) Selection { return Selection{kind: selectIndex, index: i} }

// SelectName selects the single axis Manager.ByName(name) returns.
func SelectName(name string) Selection { return Selection{kind: selectName, name: name} }

// String implements fmt.Stringer.
func (s Selection) String() string {
	switch s.kind {
	case selectNavigation:
		return "navigation"
	case selectSignal:
		return "signal"
	case selectIndex:
		return fmt.Sprintf("axis %d", s.index)
	case selectName:
		return fmt.Sprintf("axis %q", s.name)
	default:
		return "all"
	}
}

// Target is what the selected axes are converted to: compact units, one
// unit for every axis, or one unit per axis. The zero Target is
// CompactUnits.
type Target struct {
	compact bool
	list    bool
	units   []units.Unit
}

// CompactUnits converts every axis to its own compact units.
func CompactUnits() Target { return Target{compact: true} }

// ToUnit converts every selected axis to u.
func ToUnit(u units.Unit) Target { return Target{units: []units.Unit{u}} }

// ToUnits converts the k-th selected axis to us[k]. The length must equal
// the number of selected axes.
func ToUnits(us ...units.Unit) Target {
	return Target{list: true, units: append([]units.Unit(nil), us...)}
}

// step is the per-axis conversion request.
type step struct {
	compact bool
	to      units.Unit
}

// expand broadcasts t over n axes.
func (t Target) expand(n int) ([]step, error) {
	out := make([]step, n)
	switch {
	case t.compact, !t.list && len(t.units) == 0:
		for i := range out {
			out[i] = step{compact: true}
		}
	case t.list:
		if len(t.units) != n {
			return nil, fmt.Errorf("%d units for %d axes: %w", len(t.units), n, ErrUnitsLength)
		}
		for i, u := range t.units {
			out[i] = step{to: u}
		}
	default:
		for i := range out {
			out[i] = step{to: t.units[0]}
		}
	}

	return out, nil
}

// Skip records an axis a batch conversion left untouched.
type Skip struct {
	Axis Axis
	Err  error
}

// Report lists what a ConvertUnits call did. Converted and Skipped are in
// processing order.
type Report struct {
	Converted []Axis
	Skipped   []Skip
}

// ConvertUnits converts the selected axes in place.
//
// Implementation:
//   - Stage 1: resolve sel and reject it when a selected axis is non-uniform.
//   - Stage 2: broadcast target over the selected axes.
//   - Stage 3a (sameUnits=false): convert each selected axis to its own target.
//   - Stage 3b (sameUnits=true): for every group the selection touches, the
//     group's units slice (navigation: the first NavigationDimension entries,
//     signal: the rest) drives a same-units pass over the WHOLE group.
//
// Same-units pass:
//   - if any axis of the group has Undefined or unsupported units the group
//     is left untouched;
//   - the first axis converts to the first unit of the slice (compact when
//     the target is CompactUnits);
//   - every other axis whose dimensions match converts to the units the
//     first axis ended with; the rest keep theirs.
//
// Behavior highlights:
//   - Undefined and unsupported units are skipped (unsupported with a warning)
//     and listed in Report.Skipped; the batch continues.
//   - A non-uniform axis reached during a same-units pass aborts with
//     ErrNotImplemented; axes converted before it stay converted.
//
// Errors:
//   - ErrAxisNotFound for an index or name that matches nothing.
//   - ErrNotImplemented for non-uniform axes.
//   - ErrUnitsLength when a ToUnits list does not match the selection.
//   - ErrIncompatibleUnits when an axis cannot take its explicit target.
func (m *Manager) ConvertUnits(sel Selection, target Target, sameUnits bool) (Report, error) {
	var rep Report

	// Stage 1: selection.
	selected, convNav, convSig, err := m.resolveSelection(sel)
	if err != nil {
		return rep, fmt.Errorf("ConvertUnits: %w", err)
	}
	for _, ax := range selected {
		if !ax.IsUniform() {
			return rep, fmt.Errorf("ConvertUnits(%s): %s: %w", sel, label(ax), ErrNotImplemented)
		}
	}

	// Stage 2: targets.
	steps, err := target.expand(len(selected))
	if err != nil {
		return rep, fmt.Errorf("ConvertUnits(%s): %w", sel, err)
	}

	// Stage 3a: independent conversions.
	if !sameUnits {
		for i, ax := range selected {
			if err := m.convertAxis(ax, steps[i], &rep); err != nil {
				return rep, fmt.Errorf("ConvertUnits(%s): %w", sel, err)
			}
		}
		return rep, nil
	}

	// Stage 3b: same units within each touched group.
	navDim := m.NavigationDimension()
	offset := 0
	if convNav {
		if err := m.convertGroup(m.NavigationAxes(), steps[:min(navDim, len(steps))], &rep); err != nil {
			return rep, fmt.Errorf("ConvertUnits(%s): %w", sel, err)
		}
		offset = min(navDim, len(steps))
	}
	if convSig {
		if err := m.convertGroup(m.SignalAxes(), steps[offset:], &rep); err != nil {
			return rep, fmt.Errorf("ConvertUnits(%s): %w", sel, err)
		}
	}

	return rep, nil
}

// resolveSelection returns the selected axes and which groups they touch.
func (m *Manager) resolveSelection(sel Selection) (selected []Axis, convNav, convSig bool, err error) {
	switch sel.kind {
	case selectNavigation:
		nav := m.NavigationAxes()
		return nav, len(nav) > 0, false, nil
	case selectSignal:
		return m.SignalAxes(), false, true, nil
	case selectIndex, selectName:
		var ax Axis
		if sel.kind == selectIndex {
			ax, err = m.At(sel.index)
		} else {
			ax, err = m.ByName(sel.name)
		}
		if err != nil {
			return nil, false, false, err
		}
		return []Axis{ax}, ax.Navigate(), !ax.Navigate(), nil
	default:
		nav := m.NavigationAxes()
		return append(nav, m.SignalAxes()...), len(nav) > 0, true, nil
	}
}

// convertAxis applies one step. Ignorable outcomes are recorded as skips.
func (m *Manager) convertAxis(ax Axis, s step, rep *Report) error {
	var err error
	if s.compact {
		err = ax.ConvertToCompactUnits()
	} else {
		err = ax.ConvertToUnits(s.to)
	}
	switch {
	case err == nil:
		rep.Converted = append(rep.Converted, ax)
	case IsIgnored(err):
		rep.Skipped = append(rep.Skipped, Skip{Axis: ax, Err: err})
	default:
		return fmt.Errorf("%s: %w", label(ax), err)
	}

	return nil
}

// convertGroup runs the same-units pass over group using steps[0].
func (m *Manager) convertGroup(group []Axis, steps []step, rep *Report) error {
	if len(group) == 0 || len(steps) == 0 {
		return nil
	}
	for _, ax := range group {
		if err := checkUnits(m.opts, ax.Units()); err != nil {
			m.opts.logger.Debug("same-units pass skipped",
				zap.String("axis", label(ax)), zap.Error(err))
			for _, g := range group {
				rep.Skipped = append(rep.Skipped, Skip{Axis: g, Err: err})
			}
			return nil
		}
	}

	first := group[0]
	if err := m.convertAxis(first, steps[0], rep); err != nil {
		return err
	}
	ref := first.Units()
	for _, ax := range group[1:] {
		if !m.opts.registry.Compatible(ax.Units(), ref) {
			continue
		}
		if err := m.convertAxis(ax, step{to: ref}, rep); err != nil {
			return err
		}
	}

	return nil
}

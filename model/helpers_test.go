// SPDX-License-Identifier: MIT
package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hyperaxes/axes"
	"github.com/katalvlaran/hyperaxes/model"
	"github.com/katalvlaran/hyperaxes/units"
)

// observed returns a model logger option recording messages at level and above.
func observed(level zapcore.Level) (model.Option, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return model.WithLogger(zap.New(core)), logs
}

// newSignal builds a signal from axis specs with zero data.
func newSignal(t *testing.T, specs []axes.AxisSpec) *model.Signal {
	t.Helper()
	am, err := axes.NewManager(specs)
	require.NoError(t, err)
	s, err := model.NewSignal(am, mat.NewDense(am.NavigationSize(), am.SignalSize(), nil))
	require.NoError(t, err)

	return s
}

// spectrumSpecs is a single spectrum of n channels starting at offset.
func spectrumSpecs(n int, scale, offset float64) []axes.AxisSpec {
	return []axes.AxisSpec{
		{Type: axes.TypeUniform, Name: "Energy", Size: n, Scale: scale, Offset: offset, Units: units.Of("eV")},
	}
}

// alternating returns n values 1.1, 0.9, 1.1, ...
func alternating(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.9
		if i%2 == 0 {
			out[i] = 1.1
		}
	}

	return out
}

// fill sets navigation row i of s to what c evaluates to with its current
// values, using a throw-away model.
func fill(t *testing.T, s *model.Signal, i int, cs ...model.Component) {
	t.Helper()
	m, err := model.New(s)
	require.NoError(t, err)
	for _, c := range cs {
		require.NoError(t, m.Append(c))
	}
	s.Data().SetRow(i, m.Evaluate())
}

// gaussianSpectrum returns a model holding a Gaussian and a signal whose
// data is that Gaussian with A=1000, centre=50, sigma=5 on 0..99.
func gaussianSpectrum(t *testing.T, opts ...model.Option) (*model.Model, *model.Gaussian) {
	t.Helper()
	s := newSignal(t, spectrumSpecs(100, 1, 0))
	truth := model.NewGaussian()
	truth.A.Value, truth.Centre.Value, truth.Sigma.Value = 1000, 50, 5
	fill(t, s, 0, truth)

	m, err := model.New(s, opts...)
	require.NoError(t, err)
	g := model.NewGaussian()
	g.A.Value, g.Centre.Value, g.Sigma.Value = 800, 48, 4
	require.NoError(t, m.Append(g))

	return m, g
}

// offsetModel fits an Offset to data on a 0..n-1 axis.
func offsetModel(t *testing.T, data []float64, opts ...model.Option) (*model.Model, *model.Offset) {
	t.Helper()
	s, err := model.NewSignal1D(data)
	require.NoError(t, err)
	m, err := model.New(s, opts...)
	require.NoError(t, err)
	o := model.NewOffset()
	require.NoError(t, m.Append(o))

	return m, o
}

// plain is a component without analytical gradients.
type plain struct {
	p      *model.Parameter
	active bool
}

func newPlain() *plain { return &plain{p: model.NewParameter("c", 0), active: true} }

func (c *plain) Name() string { return "plain" }
func (c *plain) Dimension() int { return 1 }
func (c *plain) Parameters() []*model.Parameter { return []*model.Parameter{c.p} }
func (c *plain) Active() bool { return c.active }
func (c *plain) SetActive(a bool) { c.active = a }
func (c *plain) Evaluate(pts model.Points, out []float64) {
	for i := range pts.X {
		out[i] = c.p.Value
	}
}

// SPDX-License-Identifier: MIT
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/hyperaxes/axes"
	"github.com/katalvlaran/hyperaxes/model"
	"github.com/katalvlaran/hyperaxes/units"
)

func TestIterPath(t *testing.T) {
	cases := []struct {
		shape []int
		path  string
		want  []int
	}{
		{[]int{3, 2}, model.IterFlyback, []int{0, 1, 2, 3, 4, 5}},
		{[]int{3, 2}, model.IterSerpentine, []int{0, 1, 2, 5, 4, 3}},
		{[]int{2, 2, 2}, model.IterSerpentine, []int{0, 1, 3, 2, 6, 7, 5, 4}},
		{[]int{4}, model.IterSerpentine, []int{0, 1, 2, 3}},
		{nil, model.IterFlyback, []int{0}},
		{[]int{0, 3}, model.IterSerpentine, []int{}},
	}
	for _, tc := range cases {
		got, err := model.IterPath(tc.shape, tc.path)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, got, "%v %s", tc.shape, tc.path)
	}

	_, err := model.IterPath([]int{2}, "random")
	assert.ErrorIs(t, err, model.ErrIterPath)
	_, err = model.IterPath([]int{-1}, model.IterFlyback)
	assert.ErrorIs(t, err, model.ErrShape)
}

// lineImage is a 3x2 navigation grid of lines a0 + a1*x with a0 = i and
// a1 = 0.5*i + 1 at flat position i.
func lineImage(t *testing.T, opts ...model.Option) (*model.Model, *model.Polynomial) {
	t.Helper()
	s := newSignal(t, []axes.AxisSpec{
		{Type: axes.TypeUniform, Name: "y", Navigate: true, Size: 2, Scale: 1, Units: units.Of("nm")},
		{Type: axes.TypeUniform, Name: "x", Navigate: true, Size: 3, Scale: 1, Units: units.Of("nm")},
		{Type: axes.TypeUniform, Name: "E", Size: 50, Scale: 0.1, Units: units.Of("eV")},
	})
	require.Equal(t, []int{3, 2}, s.Axes().NavigationShape())
	for i := 0; i < 6; i++ {
		truth := model.NewPolynomial(1)
		truth.Coefficients[0].Value = float64(i)
		truth.Coefficients[1].Value = 0.5*float64(i) + 1
		fill(t, s, i, truth)
	}
	m, err := model.New(s, opts...)
	require.NoError(t, err)
	p := model.NewPolynomial(1)
	require.NoError(t, m.Append(p))

	return m, p
}

func TestMultifit(t *testing.T) {
	for _, path := range []string{model.IterFlyback, model.IterSerpentine} {
		t.Run(path, func(t *testing.T) {
			m, p := lineImage(t)
			require.NoError(t, m.Multifit(model.WithIterPath(path), model.WithGrad(model.GradAnalytical)))
			for i := 0; i < 6; i++ {
				assert.InDelta(t, float64(i), p.Coefficients[0].Map.Values[i], 1e-4, "a0 at %d", i)
				assert.InDelta(t, 0.5*float64(i)+1, p.Coefficients[1].Map.Values[i], 1e-4, "a1 at %d", i)
				assert.True(t, p.Coefficients[0].Map.IsSet[i])
				assert.Equal(t, 2, m.Dof()[i])
				assert.Less(t, m.Chisq()[i], 1e-6)
			}

			require.NoError(t, m.SetIndex(4))
			assert.InDelta(t, 4.0, p.Coefficients[0].Value, 1e-4)
			assert.InDelta(t, 3.0, p.Coefficients[1].Value, 1e-4)
		})
	}
}

func TestMultifit_Order(t *testing.T) {
	m, _ := lineImage(t)
	var visited []int
	loss := func(mm *model.Model, p, data, _ []float64) float64 {
		if n := len(visited); n == 0 || visited[n-1] != mm.Index() {
			visited = append(visited, mm.Index())
		}
		d := p[0] - data[0]
		return d*d + p[1]*p[1]
	}
	require.NoError(t, m.Multifit(
		model.WithIterPath(model.IterSerpentine),
		model.WithOptimizer(model.OptimizerNelderMead),
		model.WithCustomLoss(loss)))
	assert.Equal(t, []int{0, 1, 2, 5, 4, 3}, visited)
}

func TestMultifit_IterPathWarning(t *testing.T) {
	opt, logs := observed(zapcore.WarnLevel)
	m, _ := lineImage(t, opt)
	require.NoError(t, m.Multifit())
	assert.Equal(t, 1, logs.FilterMessageSnippet("'iterpath' default will change from 'flyback' to 'serpentine'").Len())

	require.NoError(t, m.Multifit(model.WithIterPath(model.IterFlyback)))
	assert.Equal(t, 1, logs.FilterMessageSnippet("'iterpath'").Len())

	assert.ErrorIs(t, m.Multifit(model.WithIterPath("random")), model.ErrIterPath)
}

func TestMultifit_DeprecatedWarnsOnce(t *testing.T) {
	opt, logs := observed(zapcore.WarnLevel)
	m, _ := lineImage(t, opt)
	require.NoError(t, m.Multifit(model.WithIterPath(model.IterFlyback), model.WithOptimizer("fmin_bfgs")))
	assert.Equal(t, 1, logs.FilterMessageSnippet("has been deprecated").Len())
	assert.Equal(t, model.OptimizerBFGS, m.FitOutput().Optimizer)
}

// A fixed slope stored per position is fetched before each fit.
func TestMultifit_FetchOnlyFixed(t *testing.T) {
	m, p := lineImage(t)
	a0, a1 := p.Coefficients[0], p.Coefficients[1]
	a1.Free = false
	for i := 0; i < 6; i++ {
		a1.Map.Values[i] = 0.5*float64(i) + 1
		a1.Map.IsSet[i] = true
	}
	a0.Map.Values[3], a0.Map.IsSet[3] = 1e6, true

	require.NoError(t, m.Multifit(
		model.WithIterPath(model.IterFlyback),
		model.WithFetchOnlyFixed(true),
		model.WithGrad(model.GradAnalytical)))
	for i := 0; i < 6; i++ {
		assert.InDelta(t, float64(i), a0.Map.Values[i], 1e-4, "a0 at %d", i)
		assert.Equal(t, 1, m.Dof()[i])
	}
}

func TestMultifit_StopsOnError(t *testing.T) {
	m, p := lineImage(t)
	for _, c := range p.Coefficients {
		c.Free = false
	}
	err := m.Multifit(model.WithIterPath(model.IterFlyback))
	require.ErrorIs(t, err, model.ErrNoFreeParameters)
	assert.Contains(t, err.Error(), "index 0")
	assert.False(t, p.Coefficients[0].Map.IsSet[0])
}

package aquifer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/saltwedge/utils"
)

func TestSolveDischarge(t *testing.T) {
	var (
		g = DefaultGeometry()
		s = DefaultSolverSettings()
	)
	base, err := Evaluate(reference, g)
	require.NoError(t, err)
	q0, err := SolveDischarge(reference, g, base.HInland, s)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, q0, 1e-3)
	assert.Equal(t, 0.9, DefaultPrecision().RoundDischarge(q0))

	// The target is only known to reporting precision when typed in by a user
	q0, err = SolveDischarge(reference, g, DefaultPrecision().Round(base).HInland, s)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, q0, 1e-3)
}

func TestSolveDischargeRoundTrip(t *testing.T) {
	var (
		g = DefaultGeometry()
		s = DefaultSolverSettings()
	)
	cases := []Params{
		reference.WithQ0(0.3),
		reference.WithQ0(0.55),
		reference.WithQ0(1.2),
		{A: 40, W: 0.0001, K: 30, Q0: 0.39, Z0: 10},
		{A: 40.5, W: 0.0002, K: 50, Q0: 1.38, Z0: 30},
		{A: 39.5, W: 0.00012, K: 20, Q0: 1.1, Z0: 30},
	}
	for _, p := range cases {
		h, err := InlandHead(p, g)
		require.NoError(t, err)
		q0, err := SolveDischarge(p, g, h, s)
		require.NoError(t, err, "params %+v", p)
		assert.InDelta(t, p.Q0, q0, 1e-6, "params %+v", p)
	}
}

func TestSolveDischargeSeaLevelRise(t *testing.T) {
	// Holding the inland head, a higher sea needs more discharge to keep the wedge in place
	var (
		g = DefaultGeometry()
		s = DefaultSolverSettings()
	)
	target, err := InlandHead(reference, g)
	require.NoError(t, err)
	prev := reference.Q0
	for _, slr := range []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5} {
		p := reference.WithZ0(reference.Z0 + slr)
		q0, err := SolveDischarge(p, g, target, s)
		require.NoError(t, err)
		assert.Greater(t, q0, prev-1e-9)
		h, err := InlandHead(p.WithQ0(q0), g)
		require.NoError(t, err)
		assert.InDelta(t, target, h, 1e-8)
		prev = q0
	}
}

func TestSolveDischargeNoConvergence(t *testing.T) {
	var (
		g = DefaultGeometry()
		s = DefaultSolverSettings()
	)
	// The inland head can never drop below -z0, so no discharge reaches this target
	q0, err := SolveDischarge(reference, g, -50, s)
	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.True(t, math.IsNaN(q0))
	assert.Greater(t, math.Abs(ce.Residual), 1.)

	// Starting outside the model domain
	s.InitialGuess = 0.01
	_, err = SolveDischarge(reference, g, 3.3, s)
	require.True(t, errors.As(err, &ce))
	var de *DomainError
	assert.True(t, errors.As(err, &de))

	// Too small an iteration budget for a far target
	s = DefaultSolverSettings()
	s.MaxIterations = 1
	_, err = SolveDischarge(reference, g, 0.5, s)
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, utils.ErrMaxIterations))

	// Target below the lowest inland head the domain admits: the toe radicand closes first
	edge := Params{A: 39.5, W: 0.0001, K: 10, Z0: 30}
	_, err = SolveDischarge(edge, g, 0.2233, DefaultSolverSettings())
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, utils.ErrDomainEdge))
	assert.InDelta(t, 0.1528, ce.Last, 1e-3)

	_, err = SolveDischarge(reference, g, math.NaN(), DefaultSolverSettings())
	assert.True(t, errors.As(err, &de))
}

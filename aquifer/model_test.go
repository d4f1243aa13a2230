package aquifer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reference = Params{A: 40, W: 0.00015, K: 40, Q0: 0.9, Z0: 10}

func TestEvaluate(t *testing.T) {
	g := DefaultGeometry()
	r, err := Evaluate(reference, g)
	require.NoError(t, err)
	assert.True(t, r.Xt > 0 && r.Xt < g.Inland)
	assert.InDelta(t, 57.21726, r.Xt, 1e-4)
	assert.InDelta(t, 0.25, r.Ht, 1e-9)
	assert.InDelta(t, 3.32291, r.HInland, 1e-4)

	rr := DefaultPrecision().Round(r)
	assert.Equal(t, 57.22, rr.Xt)
	assert.Equal(t, 0.25, rr.Ht)
	assert.Equal(t, 3.323, rr.HInland)

	h, err := InlandHead(reference, g)
	require.NoError(t, err)
	assert.Equal(t, r.HInland, h)
}

func TestEvaluateToeHead(t *testing.T) {
	// The toe head reduces to z0/a for any admissible discharge
	g := DefaultGeometry()
	for _, q0 := range []float64{0.3, 0.5, 0.9, 1.2} {
		r, err := Evaluate(reference.WithQ0(q0), g)
		require.NoError(t, err)
		assert.InDelta(t, reference.Z0/reference.A, r.Ht, 1e-9)
		assert.True(t, r.Xt > 0 && r.Xt < g.Inland)
	}
}

func TestEvaluateDomain(t *testing.T) {
	g := DefaultGeometry()
	check := func(p Params, g Geometry, quantity string) {
		_, err := Evaluate(p, g)
		var de *DomainError
		require.True(t, errors.As(err, &de), "expected domain error for %+v", p)
		assert.Equal(t, quantity, de.Quantity)
	}
	// Discharge too small to hold back the wedge
	check(reference.WithQ0(0.01), g, "xt radicand")
	// Deep aquifer at the default sampling bounds, low discharge
	check(Params{A: 40, W: 0.0002, K: 30, Q0: 0.39, Z0: 50}, g, "xt radicand")
	// No aquifer below sea level means no toe
	check(reference.WithZ0(0), g, "xt")
	// Toe beyond the inland reference point
	check(reference, Geometry{Length: 3000, Inland: 50}, "xt")
	check(Params{A: 0, W: 0.00015, K: 40, Q0: 0.9, Z0: 10}, g, "a")
	check(Params{A: 40, W: 0, K: 40, Q0: 0.9, Z0: 10}, g, "W")
	check(Params{A: 40, W: 0.00015, K: -1, Q0: 0.9, Z0: 10}, g, "K")

	_, err := InlandHead(reference.WithQ0(0.01), g)
	assert.Error(t, err)
}

func TestEvaluateSeaLevelRise(t *testing.T) {
	// Holding q0 fixed, a deeper aquifer bottom moves the toe inland and lowers the inland head
	g := DefaultGeometry()
	prev, err := Evaluate(reference, g)
	require.NoError(t, err)
	for _, slr := range []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5} {
		r, err := Evaluate(reference.WithZ0(reference.Z0+slr), g)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Xt, prev.Xt)
		assert.LessOrEqual(t, r.HInland, prev.HInland)
		prev = r
	}
}

func TestEvaluateDischargeMonotone(t *testing.T) {
	g := DefaultGeometry()
	prev := math.Inf(-1)
	for _, q0 := range []float64{0.3, 0.5, 0.7, 0.9, 1.2} {
		h, err := InlandHead(reference.WithQ0(q0), g)
		require.NoError(t, err)
		assert.Greater(t, h, prev)
		prev = h
	}
}

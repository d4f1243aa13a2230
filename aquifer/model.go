package aquifer

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/saltwedge/utils"
)

// Params is one sampled point of the aquifer parameter space
//
//	A  - density ratio
//	W  - uniform net recharge (m/d)
//	K  - hydraulic conductivity (m/d)
//	Q0 - discharge to the sea per unit length of coastline (m^2/d)
//	Z0 - depth of the aquifer bottom below mean sea level (m)
type Params struct {
	A, W, K, Q0, Z0 float64
}

// WithZ0 returns a copy of p at a different aquifer-bottom depth
func (p Params) WithZ0(z0 float64) Params {
	p.Z0 = z0
	return p
}

// WithQ0 returns a copy of p with a different seaward discharge
func (p Params) WithQ0(q0 float64) Params {
	p.Q0 = q0
	return p
}

type Geometry struct {
	Length float64 // aquifer length (m)
	Inland float64 // distance of the inland reference point from the coast (m)
}

func DefaultGeometry() Geometry {
	return Geometry{Length: 3000, Inland: 2000}
}

// Result holds the toe position, the water table at the toe and the inland head
type Result struct {
	Xt, Ht, HInland float64
}

// Precision is the number of decimals used when values are reported
type Precision struct {
	Toe, ToeHead, InlandHead, Discharge int
}

func DefaultPrecision() Precision {
	return Precision{Toe: 2, ToeHead: 3, InlandHead: 3, Discharge: 5}
}

func (pr Precision) Round(r Result) Result {
	return Result{
		Xt:      scalar.Round(r.Xt, pr.Toe),
		Ht:      scalar.Round(r.Ht, pr.ToeHead),
		HInland: scalar.Round(r.HInland, pr.InlandHead),
	}
}

func (pr Precision) RoundDischarge(q0 float64) float64 {
	return scalar.Round(q0, pr.Discharge)
}

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return &DomainError{Quantity: name, Value: v}
	}
	return nil
}

func sqrtChecked(name string, radicand float64) (float64, error) {
	if radicand < 0 || math.IsNaN(radicand) {
		return 0, &DomainError{Quantity: name + " radicand", Value: radicand}
	}
	return math.Sqrt(radicand), nil
}

// Evaluate computes the steady-state interface toe and heads for a single parameter set.
// Values are returned unrounded; see Precision.Round.
func Evaluate(p Params, g Geometry) (r Result, err error) {
	var (
		a, W, K, q0, z0 = p.A, p.W, p.K, p.Q0, p.Z0
		xi              = g.Inland
		root            float64
	)
	for _, c := range []struct {
		name string
		v    float64
	}{{"a", a}, {"W", W}, {"K", K}, {"inland distance", xi}} {
		if err = checkPositive(c.name, c.v); err != nil {
			return
		}
	}
	// Toe of the seawater wedge
	qw := q0 / W
	if root, err = sqrtChecked("xt", utils.POW(qw, 2)-K*(1+a)*utils.POW(z0, 2)/(W*utils.POW(a, 2))); err != nil {
		return
	}
	r.Xt = qw - root
	if !(r.Xt > 0 && r.Xt < xi) {
		err = &DomainError{Quantity: "xt", Value: r.Xt}
		return
	}
	// Water table at the toe
	if r.Ht, err = sqrtChecked("ht", (2*q0*r.Xt-W*utils.POW(r.Xt, 2))/(K*(1+a))); err != nil {
		return
	}
	// Water table at the inland reference point
	if root, err = sqrtChecked("h_inland",
		(2/K)*(xi-r.Xt)*(q0-(W/2)*(xi+r.Xt))+utils.POW(r.Ht+z0, 2)); err != nil {
		return
	}
	r.HInland = root - z0
	return
}

// InlandHead is Evaluate reduced to the inland head, the quantity fixed by a head-controlled boundary
func InlandHead(p Params, g Geometry) (float64, error) {
	r, err := Evaluate(p, g)
	if err != nil {
		return math.NaN(), err
	}
	return r.HInland, nil
}

// Package sampler builds space-filling designs over the aquifer parameter space
package sampler

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/notargets/saltwedge/aquifer"
	"github.com/notargets/saltwedge/utils"
)

// Dimension order of every sample row
const (
	DimA = iota
	DimW
	DimK
	DimQ0
	DimZ0
	NumDims
)

var DimNames = [NumDims]string{"a", "W", "K", "q0", "z0"}

type Bound struct {
	Low, High float64
}

type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "sampler: " + e.Reason
}

func Validate(count int, bounds []Bound) error {
	if count < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("sample count must be at least 1, have %d", count)}
	}
	if len(bounds) != NumDims {
		return &ConfigurationError{Reason: fmt.Sprintf("need %d bound pairs, have %d", NumDims, len(bounds))}
	}
	for i, b := range bounds {
		if !utils.IsFinite(b.Low) || !utils.IsFinite(b.High) {
			return &ConfigurationError{Reason: fmt.Sprintf("bound for %s is not finite: [%g, %g]", DimNames[i], b.Low, b.High)}
		}
		if b.Low >= b.High {
			return &ConfigurationError{Reason: fmt.Sprintf("bound for %s has low >= high: [%g, %g]", DimNames[i], b.Low, b.High)}
		}
	}
	return nil
}

type Source = rand.Source

// Seeded returns a reproducible random source
func Seeded(seed uint64) Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Generate draws count points by Latin hypercube sampling. Each dimension is stratified into count
// equal-probability bins and permuted independently, then mapped onto its bound.
// A nil src draws a fresh time seeded design.
func Generate(count int, bounds []Bound, src Source) (samples [][]float64, err error) {
	if err = Validate(count, bounds); err != nil {
		return
	}
	if src == nil {
		src = Seeded(uint64(time.Now().UnixNano()))
	}
	bnds := make([]r1.Interval, len(bounds))
	for i, b := range bounds {
		bnds[i] = r1.Interval{Min: b.Low, Max: b.High}
	}
	var (
		batch = mat.NewDense(count, len(bounds), nil)
		lhs   = samplemv.LatinHypercube{
			Q:   distmv.NewUniform(bnds, src),
			Src: src,
		}
	)
	lhs.Sample(batch)
	samples = make([][]float64, count)
	for i := range samples {
		samples[i] = mat.Row(nil, i, batch)
		// Guard the upper edge against round off in the quantile transform
		for j, b := range bounds {
			samples[i][j] = clamp(samples[i][j], b.Low, b.High)
		}
	}
	return
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Rounding is the number of decimals kept for each sampled parameter
type Rounding [NumDims]int

func DefaultRounding() Rounding {
	return Rounding{DimA: 3, DimW: 4, DimK: 3, DimQ0: 3, DimZ0: 3}
}

// ToParams converts a sample row into model parameters at the sampling precision
func ToParams(row []float64, rnd Rounding) aquifer.Params {
	r := func(d int) float64 { return scalar.Round(row[d], rnd[d]) }
	return aquifer.Params{
		A:  r(DimA),
		W:  r(DimW),
		K:  r(DimK),
		Q0: r(DimQ0),
		Z0: r(DimZ0),
	}
}

package utils

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

var (
	ErrMaxIterations  = errors.New("iteration budget exhausted")
	ErrZeroSlope      = errors.New("residual slope vanished")
	ErrInfeasibleStep = errors.New("no feasible step along the Newton direction")
	ErrDomainEdge     = errors.New("iterates held at the edge of the feasible domain, root lies beyond it")
)

// Residual is a scalar function that may be undefined at some points, signalled by a non-nil error
type Residual func(x float64) (float64, error)

type NewtonSettings struct {
	Tol           float64 // absolute tolerance on the residual
	MaxIterations int
	MaxBacktracks int // step halvings tried when an iterate is infeasible
}

// NewtonStatus describes the state of the iteration when it stopped
type NewtonStatus struct {
	X, Fx      float64
	Iterations int
}

// FZero finds a root of f starting from x0 using Newton steps with a finite difference slope.
// A step landing where f is undefined is halved until it is feasible, so the iteration routes
// around the invalid part of the domain. Convergence is judged on |f| only. When the budget runs out
// while steps are still being shortened, the root lies past the domain edge and ErrDomainEdge is returned.
func FZero(f Residual, x0 float64, s NewtonSettings) (st NewtonStatus, err error) {
	st.X = x0
	if st.Fx, err = f(x0); err != nil {
		return
	}
	var clipped bool // last accepted step was shortened
	for ; st.Iterations < s.MaxIterations; st.Iterations++ {
		if math.Abs(st.Fx) <= s.Tol {
			return
		}
		slope := Slope(f, st.X, st.Fx)
		if slope == 0 || !IsFinite(slope) {
			err = ErrZeroSlope
			return
		}
		var (
			step     = st.Fx / slope
			accepted bool
		)
		for b := 0; b <= s.MaxBacktracks; b++ {
			xNew := st.X - step
			if fNew, ferr := f(xNew); ferr == nil && IsFinite(fNew) {
				st.X, st.Fx = xNew, fNew
				accepted, clipped = true, b > 0
				break
			}
			step *= 0.5
		}
		if !accepted {
			err = ErrInfeasibleStep
			return
		}
	}
	switch {
	case math.Abs(st.Fx) <= s.Tol:
	case clipped:
		err = ErrDomainEdge
	default:
		err = ErrMaxIterations
	}
	return
}

// Slope estimates df/dx at x, using a forward difference and falling back to a backward
// difference when f is undefined ahead of x
func Slope(f Residual, x, fx float64) (d float64) {
	var (
		h     = 1e-7 * math.Max(1, math.Abs(x))
		plain = func(x float64) float64 {
			y, err := f(x)
			if err != nil {
				return math.NaN()
			}
			return y
		}
	)
	for _, formula := range []fd.Formula{fd.Forward, fd.Backward} {
		d = fd.Derivative(plain, x, &fd.Settings{
			Formula:     formula,
			Step:        h,
			OriginKnown: true,
			OriginValue: fx,
		})
		if IsFinite(d) {
			return
		}
	}
	return
}

package aquifer

import (
	"math"

	"github.com/notargets/saltwedge/utils"
)

type SolverSettings struct {
	InitialGuess  float64 // starting discharge (m^2/d)
	Tolerance     float64 // absolute tolerance on the inland head residual (m)
	MaxIterations int
	MaxBacktracks int
}

func DefaultSolverSettings() SolverSettings {
	return SolverSettings{
		InitialGuess:  0.9,
		Tolerance:     1e-10,
		MaxIterations: 100,
		MaxBacktracks: 60,
	}
}

// SolveDischarge inverts the model for the seaward discharge that yields the target inland head
// under a head-controlled boundary. p.Q0 is ignored. The returned discharge is unrounded.
//
// Iterates where the forward model is undefined are treated as infeasible and the Newton step is
// shortened until it lands inside the domain. Failure of any kind is a *ConvergenceError.
func SolveDischarge(p Params, g Geometry, target float64, s SolverSettings) (q0 float64, err error) {
	if !utils.IsFinite(target) {
		return math.NaN(), &DomainError{Quantity: "target inland head", Value: target}
	}
	residual := func(q float64) (float64, error) {
		h, err := InlandHead(p.WithQ0(q), g)
		if err != nil {
			return math.NaN(), err
		}
		return target - h, nil
	}
	st, err := utils.FZero(residual, s.InitialGuess, utils.NewtonSettings{
		Tol:           s.Tolerance,
		MaxIterations: s.MaxIterations,
		MaxBacktracks: s.MaxBacktracks,
	})
	if err != nil {
		return math.NaN(), &ConvergenceError{
			Iterations: st.Iterations,
			Last:       st.X,
			Residual:   st.Fx,
			Err:        err,
		}
	}
	return st.X, nil
}

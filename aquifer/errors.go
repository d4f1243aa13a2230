package aquifer

import "fmt"

// DomainError reports an input combination outside the physical validity of the
// sharp-interface solution, typically a negative radicand.
type DomainError struct {
	Quantity string
	Value    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("aquifer: %s out of model domain (%g)", e.Quantity, e.Value)
}

// ConvergenceError is returned when the discharge inversion fails to reach its tolerance.
type ConvergenceError struct {
	Iterations int
	Last       float64 // last accepted discharge iterate
	Residual   float64
	Err        error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("aquifer: no convergence after %d iterations (q0 = %g, residual = %g): %v",
		e.Iterations, e.Last, e.Residual, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }

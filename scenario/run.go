// Package scenario drives one sampled parameter set through the sea-level rise sequence under
// the flux-controlled and head-controlled boundary conditions.
package scenario

import (
	"context"
	"errors"
	"math"

	"github.com/notargets/saltwedge/aquifer"
)

type Config struct {
	Geometry  aquifer.Geometry
	SLRSteps  []float64 // sea-level rise increments above the sampled z0, baseline excluded
	Precision aquifer.Precision
	Solver    aquifer.SolverSettings
}

func DefaultSLRSteps() []float64 {
	return []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5}
}

func DefaultConfig() Config {
	return Config{
		Geometry:  aquifer.DefaultGeometry(),
		SLRSteps:  DefaultSLRSteps(),
		Precision: aquifer.DefaultPrecision(),
		Solver:    aquifer.DefaultSolverSettings(),
	}
}

// Outcome is a forward evaluation or the error that prevented it
type Outcome struct {
	Result aquifer.Result
	Err    error
}

// Evaluate wraps aquifer.Evaluate as an Outcome
func Evaluate(p aquifer.Params, g aquifer.Geometry) Outcome {
	r, err := aquifer.Evaluate(p, g)
	return Outcome{Result: r, Err: err}
}

// StepState is the input of one step in the sea-level rise sequence
type StepState struct {
	Index int     // 0 is the baseline
	SLR   float64 // rise above the sampled z0
	Z0    float64
	Q0    float64 // discharge fed to the head-controlled system
}

// Step records both regimes at one sea level
type Step struct {
	StepState
	Flux         Outcome
	Head         Outcome
	DischargeErr error // set when the head-controlled discharge could not be solved
}

func (s Step) Failed() bool {
	return s.Flux.Err != nil || s.Head.Err != nil || s.DischargeErr != nil
}

type RunReport struct {
	Number    int // 1-indexed, in sampling order
	Params    aquifer.Params
	Target    float64 // inland head held by the head-controlled system
	TargetErr error   // non-nil when no target was obtained and the run was aborted after the baseline
	Steps     []Step
}

func (r *RunReport) Aborted() bool {
	return r.TargetErr != nil
}

func (r *RunReport) FailedSteps() (n int) {
	for _, s := range r.Steps {
		if s.Failed() {
			n++
		}
	}
	return
}

// next returns the state of the following step, raising the sea level by slr above the sampled z0
func (st StepState) next(p aquifer.Params, slr float64) StepState {
	return StepState{
		Index: st.Index + 1,
		SLR:   slr,
		Z0:    p.Z0 + slr,
		Q0:    math.NaN(),
	}
}

// Run evaluates one parameter set at the baseline sea level, obtains the inland head target and
// then walks the sea-level rise steps. The flux-controlled system always uses the sampled q0;
// the head-controlled system uses the discharge solved for each step.
//
// Model failures are recorded on the step they occur in. The returned error is non-nil only when
// ctx is done, in which case the partial report is still returned.
func Run(ctx context.Context, cfg Config, number int, p aquifer.Params, tp TargetProvider) (rep *RunReport, err error) {
	rep = &RunReport{
		Number: number,
		Params: p,
		Target: math.NaN(),
	}
	st := StepState{SLR: 0, Z0: p.Z0, Q0: p.Q0}
	base := Step{
		StepState: st,
		Flux:      Evaluate(p, cfg.Geometry),
		Head:      Evaluate(p.WithQ0(st.Q0), cfg.Geometry),
	}
	rep.Steps = append(rep.Steps, base)

	target, terr := tp.Target(ctx, number, base.Head)
	if terr != nil {
		if ctx.Err() != nil && errors.Is(terr, ctx.Err()) {
			return rep, terr
		}
		rep.TargetErr = terr
		return
	}
	rep.Target = target

	for _, slr := range cfg.SLRSteps {
		if err = ctx.Err(); err != nil {
			return
		}
		st = st.next(p, slr)
		step := Step{
			Flux: Evaluate(p.WithZ0(st.Z0), cfg.Geometry),
		}
		pz := p.WithZ0(st.Z0)
		if q0, serr := aquifer.SolveDischarge(pz, cfg.Geometry, rep.Target, cfg.Solver); serr != nil {
			step.DischargeErr = serr
			step.Head = Outcome{Err: serr}
		} else {
			st.Q0 = q0
			step.Head = Evaluate(pz.WithQ0(q0), cfg.Geometry)
		}
		step.StepState = st
		rep.Steps = append(rep.Steps, step)
	}
	return
}

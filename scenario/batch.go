package scenario

import (
	"context"
	"io"

	"github.com/notargets/saltwedge/aquifer"
)

type Summary struct {
	Runs, Completed, Aborted, FailedSteps int
}

// Batch runs every parameter set in order and writes each report as soon as it is complete.
// Only cancellation of ctx or a failing writer stops the batch early.
func Batch(ctx context.Context, cfg Config, params []aquifer.Params, tp TargetProvider, w io.Writer) (sum Summary, err error) {
	for i, p := range params {
		var rep *RunReport
		rep, err = Run(ctx, cfg, i+1, p, tp)
		if rep != nil {
			if werr := rep.Write(w, cfg.Precision, cfg.Geometry); werr != nil && err == nil {
				err = werr
			}
			sum.Runs++
			sum.FailedSteps += rep.FailedSteps()
			if rep.Aborted() || err != nil {
				sum.Aborted++
			} else {
				sum.Completed++
			}
		}
		if err != nil {
			return
		}
	}
	return
}

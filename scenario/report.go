package scenario

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/saltwedge/aquifer"
)

// num prints an input value with its own decimals, trimming sums like z0 + SLR back to them
func num(v float64) string {
	return strconv.FormatFloat(scalar.Round(v, 9), 'f', -1, 64)
}

func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Write prints the run as a block of lines, with a blank line between the baseline, the target and
// every sea-level rise step. Values are rounded to the reporting precision here and nowhere else.
func (r *RunReport) Write(w io.Writer, prec aquifer.Precision, g aquifer.Geometry) (err error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Run Number %d\n", r.Number)
	fmt.Fprintf(&b, "Aquifer Length: %sm\n", num(g.Length))
	fmt.Fprintf(&b, "a: %s\n", num(r.Params.A))
	fmt.Fprintf(&b, "W: %sm/day\n", num(r.Params.W))
	fmt.Fprintf(&b, "K: %sm/day\n", num(r.Params.K))
	fmt.Fprintf(&b, "q0: %sm^2/day\n", num(r.Params.Q0))
	fmt.Fprintf(&b, "z0: %sm\n", num(r.Params.Z0))
	for i, s := range r.Steps {
		b.WriteString("\n")
		fmt.Fprintf(&b, "SLR: %sm\n", num(s.SLR))
		b.WriteString("FLUX-CONTROLLED SYSTEM:\n")
		fmt.Fprintf(&b, "q0: %sm^2/day\n", num(r.Params.Q0))
		fmt.Fprintf(&b, "z0: %sm\n", num(s.Z0))
		WriteOutcome(&b, s.Flux, prec, g)
		b.WriteString("HEAD-CONTROLLED SYSTEM:\n")
		if s.DischargeErr != nil {
			fmt.Fprintf(&b, "q0: error: %v\n", s.DischargeErr)
		} else {
			fmt.Fprintf(&b, "q0: %sm^2/day\n", fixed(prec.RoundDischarge(s.Q0), prec.Discharge))
			fmt.Fprintf(&b, "z0: %sm\n", num(s.Z0))
			WriteOutcome(&b, s.Head, prec, g)
		}
		if i == 0 {
			b.WriteString("\n")
			if r.TargetErr != nil {
				fmt.Fprintf(&b, "Run aborted: %v\n", r.TargetErr)
			} else {
				fmt.Fprintf(&b, "Target h_inland: %sm\n", num(r.Target))
			}
		}
	}
	b.WriteString("\n")
	_, err = io.WriteString(w, b.String())
	return
}

// WriteOutcome prints the three model outputs of one evaluation, or its error
func WriteOutcome(w io.Writer, o Outcome, prec aquifer.Precision, g aquifer.Geometry) {
	if o.Err != nil {
		fmt.Fprintf(w, "error: %v\n", o.Err)
		return
	}
	rr := prec.Round(o.Result)
	fmt.Fprintf(w, "xt Value: %sm\n", fixed(rr.Xt, prec.Toe))
	fmt.Fprintf(w, "ht Value: %sm\n", fixed(rr.Ht, prec.ToeHead))
	fmt.Fprintf(w, "h_inland value at x=%s: %sm\n", num(g.Inland), fixed(rr.HInland, prec.InlandHead))
}

package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/notargets/saltwedge/aquifer"
	"github.com/notargets/saltwedge/sampler"
	"github.com/notargets/saltwedge/scenario"
)

const (
	TargetPrompt   = "prompt"
	TargetFixed    = "fixed"
	TargetBaseline = "baseline"
)

type BoundsInput struct {
	A  [2]float64 `json:"a"`
	W  [2]float64 `json:"W"`
	K  [2]float64 `json:"K"`
	Q0 [2]float64 `json:"q0"`
	Z0 [2]float64 `json:"z0"`
}

type PrecisionInput struct {
	Toe        int `json:"Toe"`
	ToeHead    int `json:"ToeHead"`
	InlandHead int `json:"InlandHead"`
	Discharge  int `json:"Discharge"`
}

type SolverInput struct {
	InitialGuess  float64 `json:"InitialGuess"`
	Tolerance     float64 `json:"Tolerance"`
	MaxIterations int     `json:"MaxIterations"`
	MaxBacktracks int     `json:"MaxBacktracks"`
}

// Parameters obtained from the YAML input file; ghodss/yaml maps YAML through the json tags
type InputParameters struct {
	Title          string         `json:"Title"`
	SampleCount    int            `json:"SampleCount"`
	Seed           uint64         `json:"Seed"` // zero draws a new design on every run
	Bounds         BoundsInput    `json:"Bounds"`
	AquiferLength  float64        `json:"AquiferLength"`
	InlandDistance float64        `json:"InlandDistance"`
	SLRSteps       []float64      `json:"SLRSteps"`
	Precision      PrecisionInput `json:"Precision"`
	Solver         SolverInput    `json:"Solver"`
	TargetMode     string         `json:"TargetMode"`
	Targets        []float64      `json:"Targets"` // one inland head per run for TargetMode fixed
}

// NewInputParameters returns the values used when the input file leaves a field out
func NewInputParameters() (ip *InputParameters) {
	var (
		g  = aquifer.DefaultGeometry()
		pr = aquifer.DefaultPrecision()
		s  = aquifer.DefaultSolverSettings()
	)
	return &InputParameters{
		Title:       "Coastal aquifer sea-level rise",
		SampleCount: 5,
		Bounds: BoundsInput{
			A:  [2]float64{39.5, 40.5},
			W:  [2]float64{0.0001, 0.0002},
			K:  [2]float64{10, 30},
			Q0: [2]float64{0.39, 1.38},
			Z0: [2]float64{30, 50},
		},
		AquiferLength:  g.Length,
		InlandDistance: g.Inland,
		SLRSteps:       scenario.DefaultSLRSteps(),
		Precision: PrecisionInput{
			Toe:        pr.Toe,
			ToeHead:    pr.ToeHead,
			InlandHead: pr.InlandHead,
			Discharge:  pr.Discharge,
		},
		Solver: SolverInput{
			InitialGuess:  s.InitialGuess,
			Tolerance:     s.Tolerance,
			MaxIterations: s.MaxIterations,
			MaxBacktracks: s.MaxBacktracks,
		},
		TargetMode: TargetPrompt,
	}
}

// Parse overlays the YAML document on the current values
func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) SamplerBounds() []sampler.Bound {
	b := make([]sampler.Bound, sampler.NumDims)
	for i, pr := range [sampler.NumDims][2]float64{
		sampler.DimA:  ip.Bounds.A,
		sampler.DimW:  ip.Bounds.W,
		sampler.DimK:  ip.Bounds.K,
		sampler.DimQ0: ip.Bounds.Q0,
		sampler.DimZ0: ip.Bounds.Z0,
	} {
		b[i] = sampler.Bound{Low: pr[0], High: pr[1]}
	}
	return b
}

func (ip *InputParameters) ScenarioConfig() scenario.Config {
	return scenario.Config{
		Geometry: aquifer.Geometry{Length: ip.AquiferLength, Inland: ip.InlandDistance},
		SLRSteps: append([]float64(nil), ip.SLRSteps...),
		Precision: aquifer.Precision{
			Toe:        ip.Precision.Toe,
			ToeHead:    ip.Precision.ToeHead,
			InlandHead: ip.Precision.InlandHead,
			Discharge:  ip.Precision.Discharge,
		},
		Solver: aquifer.SolverSettings{
			InitialGuess:  ip.Solver.InitialGuess,
			Tolerance:     ip.Solver.Tolerance,
			MaxIterations: ip.Solver.MaxIterations,
			MaxBacktracks: ip.Solver.MaxBacktracks,
		},
	}
}

// Validate rejects a design before any run starts
func (ip *InputParameters) Validate() error {
	bad := func(format string, args ...interface{}) error {
		return &sampler.ConfigurationError{Reason: fmt.Sprintf(format, args...)}
	}
	if err := sampler.Validate(ip.SampleCount, ip.SamplerBounds()); err != nil {
		return err
	}
	if !(ip.InlandDistance > 0 && ip.AquiferLength >= ip.InlandDistance) {
		return bad("inland distance %g must be positive and within the aquifer length %g",
			ip.InlandDistance, ip.AquiferLength)
	}
	prev := 0.
	for _, slr := range ip.SLRSteps {
		if !(slr > prev) {
			return bad("SLR steps must be positive and increasing, have %v", ip.SLRSteps)
		}
		prev = slr
	}
	for name, d := range map[string]int{
		"Toe": ip.Precision.Toe, "ToeHead": ip.Precision.ToeHead,
		"InlandHead": ip.Precision.InlandHead, "Discharge": ip.Precision.Discharge,
	} {
		if d < 0 || d > 12 {
			return bad("precision %s must be between 0 and 12 decimals, have %d", name, d)
		}
	}
	if !(ip.Solver.Tolerance > 0) || ip.Solver.MaxIterations < 1 || ip.Solver.MaxBacktracks < 0 {
		return bad("solver needs a positive tolerance and iteration budget, have %+v", ip.Solver)
	}
	switch ip.TargetMode {
	case TargetPrompt, TargetBaseline:
	case TargetFixed:
		if len(ip.Targets) < ip.SampleCount {
			return bad("TargetMode fixed needs %d Targets, have %d", ip.SampleCount, len(ip.Targets))
		}
	default:
		return bad("unknown TargetMode %q, want %s, %s or %s", ip.TargetMode, TargetPrompt, TargetFixed, TargetBaseline)
	}
	return nil
}

// Print echoes the design to w, one field per line
func (ip *InputParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Sample Count\n", ip.SampleCount)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Seed\n", ip.Seed)
	for i, b := range ip.SamplerBounds() {
		fmt.Fprintf(w, "[%g, %g]\t= Bounds[%s]\n", b.Low, b.High, sampler.DimNames[i])
	}
	fmt.Fprintf(w, "%8.2f\t\t= Aquifer Length\n", ip.AquiferLength)
	fmt.Fprintf(w, "%8.2f\t\t= Inland Distance\n", ip.InlandDistance)
	fmt.Fprintf(w, "%v\t= SLR Steps\n", ip.SLRSteps)
	fmt.Fprintf(w, "%+v\t= Precision\n", ip.Precision)
	fmt.Fprintf(w, "%+v\t= Solver\n", ip.Solver)
	fmt.Fprintf(w, "[%s]\t\t\t= Target Mode\n", ip.TargetMode)
	if len(ip.Targets) != 0 {
		fmt.Fprintf(w, "%v\t= Targets\n", ip.Targets)
	}
}

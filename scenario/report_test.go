package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWrite(t *testing.T) {
	cfg := DefaultConfig()
	rep, err := Run(context.Background(), cfg, 1, reference, FixedTargets{3.323})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, rep.Write(&out, cfg.Precision, cfg.Geometry))
	text := out.String()

	blocks := strings.Split(strings.TrimRight(text, "\n"), "\n\n")
	// header, baseline, target, then one block per rise step
	require.Len(t, blocks, 3+len(cfg.SLRSteps))
	assert.Equal(t, strings.Join([]string{
		"Run Number 1",
		"Aquifer Length: 3000m",
		"a: 40",
		"W: 0.00015m/day",
		"K: 40m/day",
		"q0: 0.9m^2/day",
		"z0: 10m",
	}, "\n"), blocks[0])
	assert.Equal(t, strings.Join([]string{
		"SLR: 0m",
		"FLUX-CONTROLLED SYSTEM:",
		"q0: 0.9m^2/day",
		"z0: 10m",
		"xt Value: 57.22m",
		"ht Value: 0.250m",
		"h_inland value at x=2000: 3.323m",
		"HEAD-CONTROLLED SYSTEM:",
		"q0: 0.90000m^2/day",
		"z0: 10m",
		"xt Value: 57.22m",
		"ht Value: 0.250m",
		"h_inland value at x=2000: 3.323m",
	}, "\n"), blocks[1])
	assert.Equal(t, "Target h_inland: 3.323m", blocks[2])

	lines := strings.Split(blocks[3], "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "SLR: 0.25m", lines[0])
	assert.Equal(t, "z0: 10.25m", lines[3])
	assert.Equal(t, "xt Value: 60.13m", lines[4])
	assert.True(t, strings.HasPrefix(lines[8], "q0: 0.915"))
	assert.Equal(t, "h_inland value at x=2000: 3.323m", lines[12])
	assert.True(t, strings.HasPrefix(blocks[len(blocks)-1], "SLR: 1.5m\n"))
}

func TestReportWriteErrors(t *testing.T) {
	cfg := DefaultConfig()
	rep, err := Run(context.Background(), cfg, 4, reference, FixedTargets{1, 2, 3, -50})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, rep.Write(&out, cfg.Precision, cfg.Geometry))
	assert.Equal(t, len(cfg.SLRSteps), strings.Count(out.String(), "q0: error: aquifer: no convergence"))

	rep, err = Run(context.Background(), cfg, 1, reference.WithQ0(0.01), FixedTargets{})
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, rep.Write(&out, cfg.Precision, cfg.Geometry))
	assert.Contains(t, out.String(), "error: aquifer: xt radicand out of model domain")
	assert.Contains(t, out.String(), "Run aborted: run 1: no inland head")
}

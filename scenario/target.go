package scenario

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/notargets/saltwedge/aquifer"
	"github.com/notargets/saltwedge/utils"
)

// TargetProvider supplies the inland head held fixed by the head-controlled system of a run.
// baseline is the head-controlled evaluation at the unperturbed sea level.
type TargetProvider interface {
	Target(ctx context.Context, run int, baseline Outcome) (float64, error)
}

// InputError means no usable target was obtained; it aborts the run it belongs to
type InputError struct {
	Run   int
	Input string
	Err   error
}

func (e *InputError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("run %d: invalid inland head %q: %v", e.Run, e.Input, e.Err)
	}
	return fmt.Sprintf("run %d: no inland head: %v", e.Run, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func parseTarget(run int, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &InputError{Run: run, Err: fmt.Errorf("empty input")}
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InputError{Run: run, Input: s, Err: err}
	}
	if !utils.IsFinite(h) {
		return 0, &InputError{Run: run, Input: s, Err: fmt.Errorf("not a finite number")}
	}
	return h, nil
}

// Prompt asks for the target on Out and reads one line from In per run.
// A Timeout of zero waits until ctx is done. Lines read while a prompt that was abandoned (timed out
// or cancelled) was showing are late answers to that run and are discarded. Target must not be
// called concurrently.
type Prompt struct {
	In        io.Reader
	Out       io.Writer
	Timeout   time.Duration
	Precision aquifer.Precision

	once      sync.Once
	prompt    atomic.Int64 // number of the prompt currently shown
	abandoned map[int64]bool
	lines     chan promptLine
	rerr      error
}

type promptLine struct {
	text   string
	prompt int64
}

func (p *Prompt) start() {
	p.abandoned = make(map[int64]bool)
	p.lines = make(chan promptLine)
	go func() {
		sc := bufio.NewScanner(p.In)
		for sc.Scan() {
			p.lines <- promptLine{text: sc.Text(), prompt: p.prompt.Load()}
		}
		p.rerr = sc.Err()
		close(p.lines)
	}()
}

func (p *Prompt) Target(ctx context.Context, run int, baseline Outcome) (h float64, err error) {
	current := p.prompt.Add(1)
	p.once.Do(p.start)
	if baseline.Err == nil {
		fmt.Fprintf(p.Out, "Run %d baseline h_inland: %.*fm\n",
			run, p.Precision.InlandHead, p.Precision.Round(baseline.Result).HInland)
	}
	fmt.Fprintf(p.Out, "Input h_inland Value for SLR = 0m: ")
	var timeout <-chan time.Time
	if p.Timeout > 0 {
		timer := time.NewTimer(p.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}
	for {
		select {
		case <-ctx.Done():
			p.abandoned[current] = true
			fmt.Fprintln(p.Out)
			return 0, ctx.Err()
		case <-timeout:
			p.abandoned[current] = true
			fmt.Fprintln(p.Out)
			return 0, &InputError{Run: run, Err: fmt.Errorf("no response within %v", p.Timeout)}
		case line, ok := <-p.lines:
			if !ok {
				fmt.Fprintln(p.Out)
				if p.rerr != nil {
					return 0, &InputError{Run: run, Err: p.rerr}
				}
				return 0, &InputError{Run: run, Err: io.EOF}
			}
			if p.abandoned[line.prompt] {
				continue
			}
			return parseTarget(run, line.text)
		}
	}
}

// FixedTargets supplies one preset target per run, indexed by run number
type FixedTargets []float64

func (ft FixedTargets) Target(ctx context.Context, run int, baseline Outcome) (float64, error) {
	if run < 1 || run > len(ft) {
		return 0, &InputError{Run: run, Err: fmt.Errorf("no target configured, have %d", len(ft))}
	}
	if !utils.IsFinite(ft[run-1]) {
		return 0, &InputError{Run: run, Input: fmt.Sprint(ft[run-1]), Err: fmt.Errorf("not a finite number")}
	}
	return ft[run-1], nil
}

// BaselineTarget holds the inland head found at the baseline sea level, rounded as it is reported
type BaselineTarget struct {
	Precision aquifer.Precision
}

func (bt BaselineTarget) Target(ctx context.Context, run int, baseline Outcome) (float64, error) {
	if baseline.Err != nil {
		return 0, &InputError{Run: run, Err: baseline.Err}
	}
	return bt.Precision.Round(baseline.Result).HInland, nil
}

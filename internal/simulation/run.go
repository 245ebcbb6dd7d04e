package simulation

import (
	"context"
	"fmt"
	"math"

	"github.com/overland-sim/overland/internal/monitoring"
	"github.com/overland-sim/overland/internal/timeutil"
)

// RunOptions controls Run.
type RunOptions struct {
	Steps       int
	Timestep    float64 // seconds
	ReportEvery int     // 0 disables progress reports

	// OnProgress is called with the state at step 0, every ReportEvery
	// steps and after the last step. A non-nil error stops the run.
	OnProgress func(Progress) error

	// Clock measures wall time for the step rate log line. Defaults to
	// timeutil.RealClock.
	Clock timeutil.Clock
}

// Progress summarises the live grid at a report point.
type Progress struct {
	Step           int // steps completed in this run
	TotalSteps     int
	ElapsedSeconds float64 // simulated time since the simulation was created
	TotalVolume    float64 // m^3
	MaxDepth       float64 // m
	VolumeDrift    float64 // relative change in total volume since the run started
	WetCells       int
}

// WetThreshold is the depth above which Progress counts a cell as wet.
const WetThreshold = 1e-6

// Run advances the simulation opts.Steps times. Cancellation is checked
// between steps; a step that has started always completes.
func (s *Simulation) Run(ctx context.Context, opts RunOptions) error {
	if opts.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidRunOptions, opts.Steps)
	}
	if opts.ReportEvery < 0 {
		return fmt.Errorf("%w: report interval must be non-negative, got %d", ErrInvalidRunOptions, opts.ReportEvery)
	}
	if !(opts.Timestep > 0) || math.IsInf(opts.Timestep, 0) {
		return fmt.Errorf("%w: %v s", ErrInvalidTimestep, opts.Timestep)
	}

	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	started := clock.Now()
	startVolume := s.Grid.TotalWaterVolume()

	report := func(step int) error {
		if opts.ReportEvery == 0 {
			return nil
		}
		p := s.progress(step, opts.Steps, startVolume)
		monitoring.Logf("simulation: step %d/%d t=%.3fs volume=%.6g m3 max_depth=%.4g m drift=%.2e",
			p.Step, p.TotalSteps, p.ElapsedSeconds, p.TotalVolume, p.MaxDepth, p.VolumeDrift)
		if opts.OnProgress == nil {
			return nil
		}
		if err := opts.OnProgress(p); err != nil {
			return fmt.Errorf("progress callback at step %d: %w", step, err)
		}
		return nil
	}

	if err := report(0); err != nil {
		return err
	}
	for step := 1; step <= opts.Steps; step++ {
		if err := ctx.Err(); err != nil {
			monitoring.Logf("simulation: stopped after %d of %d steps: %v", step-1, opts.Steps, err)
			return err
		}
		if err := s.AdvanceByTimestep(opts.Timestep); err != nil {
			return err
		}
		if opts.ReportEvery > 0 && (step%opts.ReportEvery == 0 || step == opts.Steps) {
			if err := report(step); err != nil {
				return err
			}
		}
	}

	wall := clock.Since(started)
	monitoring.Logf("simulation: %d steps in %v (%.0f steps/s)", opts.Steps, wall, timeutil.StepRate(opts.Steps, wall))
	return nil
}

func (s *Simulation) progress(step, total int, startVolume float64) Progress {
	volume := s.Grid.TotalWaterVolume()
	drift := 0.0
	if startVolume > 0 {
		drift = (volume - startVolume) / startVolume
	}
	return Progress{
		Step:           step,
		TotalSteps:     total,
		ElapsedSeconds: s.elapsed,
		TotalVolume:    volume,
		MaxDepth:       s.Grid.MaxDepth(),
		VolumeDrift:    drift,
		WetCells:       s.Grid.WetCellCount(WetThreshold),
	}
}

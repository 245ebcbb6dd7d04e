package simulation

import (
	"fmt"

	"github.com/overland-sim/overland/internal/grid"
)

// Probe names a cell whose depth is sampled during a run.
type Probe struct {
	Name string
	X, Y int
}

// ProbeSample is the depth at a probe at one point in time.
type ProbeSample struct {
	Step  int
	Time  float64 // simulated seconds
	Depth float64 // m
}

// ProbeRecorder accumulates one depth series per probe.
type ProbeRecorder struct {
	probes []Probe
	series [][]ProbeSample
}

// NewProbeRecorder checks every probe against the grid dimensions.
func NewProbeRecorder(g *grid.Grid, probes []Probe) (*ProbeRecorder, error) {
	for _, p := range probes {
		if p.X < 0 || p.X >= g.NCols || p.Y < 0 || p.Y >= g.NRows {
			return nil, fmt.Errorf("%w: %q at (%d,%d) on a %dx%d grid",
				ErrProbeOutOfRange, p.Name, p.X, p.Y, g.NCols, g.NRows)
		}
	}
	return &ProbeRecorder{
		probes: append([]Probe(nil), probes...),
		series: make([][]ProbeSample, len(probes)),
	}, nil
}

// Record samples every probe on g.
func (r *ProbeRecorder) Record(g *grid.Grid, step int, time float64) {
	for i, p := range r.probes {
		r.series[i] = append(r.series[i], ProbeSample{
			Step:  step,
			Time:  time,
			Depth: g.Cell(p.X, p.Y).Depth,
		})
	}
}

// Probes returns the recorded probes in registration order.
func (r *ProbeRecorder) Probes() []Probe { return r.probes }

// Series returns the samples of probe i.
func (r *ProbeRecorder) Series(i int) []ProbeSample { return r.series[i] }

// Latest returns the most recent sample of probe i.
func (r *ProbeRecorder) Latest(i int) (ProbeSample, bool) {
	s := r.series[i]
	if len(s) == 0 {
		return ProbeSample{}, false
	}
	return s[len(s)-1], true
}

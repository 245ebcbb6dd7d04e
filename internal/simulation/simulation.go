// Package simulation advances a grid of water depths through time with an
// explicit, double-buffered update.
//
// Each step copies the live grid into a snapshot, computes the outflow of
// every cell towards its downhill neighbours from that snapshot alone, and
// applies the resulting depth changes to the live grid. Because no flow is
// ever computed from a partially updated grid, the result of a step does
// not depend on the order cells are visited in.
package simulation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/overland-sim/overland/internal/grid"
	"github.com/overland-sim/overland/internal/hydraulics"
)

var (
	// ErrInvalidTimestep is returned for a timestep that is not a positive
	// finite number of seconds.
	ErrInvalidTimestep = errors.New("simulation: invalid timestep")

	// ErrInvalidRunOptions is returned by Run for unusable options.
	ErrInvalidRunOptions = errors.New("simulation: invalid run options")

	// ErrProbeOutOfRange is returned when a probe does not address a cell
	// of the grid.
	ErrProbeOutOfRange = errors.New("simulation: probe out of range")
)

// Simulation owns a live grid and the snapshot used while stepping it.
// It is not safe for concurrent use.
type Simulation struct {
	Grid   *grid.Grid // live state, mutated by every step
	Buffer *grid.Grid // pre-step snapshot, rebuilt at the start of every step

	steps   int
	elapsed float64 // simulated seconds

	// scratch reused across cells and steps
	downhill []grid.Cell
	flows    []float64
	slopes   []float64
	volumes  []float64
}

// New validates g and wraps it in a Simulation. The simulation takes
// ownership of g; callers read results through Grid or Snapshot.
func New(g *grid.Grid) (*Simulation, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", grid.ErrMalformedGrid)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Simulation{
		Grid:     g,
		Buffer:   g.Clone(),
		downhill: make([]grid.Cell, 0, 8),
		flows:    make([]float64, 0, 8),
		slopes:   make([]float64, 0, 8),
		volumes:  make([]float64, 0, 8),
	}, nil
}

// Steps returns the number of completed timesteps.
func (s *Simulation) Steps() int { return s.steps }

// ElapsedSeconds returns the simulated time covered by completed steps.
func (s *Simulation) ElapsedSeconds() float64 { return s.elapsed }

// Snapshot returns a deep copy of the live grid that stays valid while the
// simulation keeps stepping.
func (s *Simulation) Snapshot() *grid.Grid { return s.Grid.Clone() }

// AdvanceByTimestep moves water for dt seconds. A cell never loses more
// water in one step than it held at the start of the step, and the total
// volume on the grid is conserved up to rounding. An invalid dt leaves the
// grid untouched.
func (s *Simulation) AdvanceByTimestep(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v s", ErrInvalidTimestep, dt)
	}

	s.Buffer.CopyFrom(s.Grid)
	snap := s.Buffer
	cellSize := snap.CellSize
	area := cellSize * cellSize

	for i := range snap.Cells {
		c := snap.Cells[i]

		s.downhill = snap.AppendNeighboursWithLowerWaterLevel(s.downhill[:0], c.X, c.Y)
		if len(s.downhill) == 0 {
			continue
		}

		s.flows = s.flows[:0]
		s.slopes = s.slopes[:0]
		for _, n := range s.downhill {
			s.flows = append(s.flows, hydraulics.Flow(c, n, cellSize))
			s.slopes = append(s.slopes, hydraulics.HydraulicSlope(c, n, cellSize))
		}

		slopeSum := floats.Sum(s.slopes)
		if slopeSum == 0 {
			continue
		}

		s.volumes = s.volumes[:0]
		for k := range s.downhill {
			s.volumes = append(s.volumes, s.flows[k]*(s.slopes[k]/slopeSum)*dt)
		}

		volumesSum := floats.Sum(s.volumes)
		cellVolume := snap.WaterVolumeOfCell(c.X, c.Y)
		if volumesSum > cellVolume {
			floats.Scale(cellVolume/volumesSum, s.volumes)
			volumesSum = floats.Sum(s.volumes)
		}
		if volumesSum == 0 {
			continue
		}

		src := &s.Grid.Cells[i]
		src.Depth -= volumesSum / area
		if src.Depth < 0 {
			// rounding residue of a fully drained cell
			src.Depth = 0
		}
		for k, n := range s.downhill {
			s.Grid.Cells[s.Grid.Idx(n.X, n.Y)].Depth += s.volumes[k] / area
		}
	}

	s.steps++
	s.elapsed += dt
	return nil
}

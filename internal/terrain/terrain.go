// Package terrain builds initial grids: ground elevation plus a starting
// water depth for every cell. All builders return validated grids.
package terrain

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/overland-sim/overland/internal/grid"
)

// ElevationFunc gives the ground elevation (m) of the cell at column x,
// row y.
type ElevationFunc func(x, y int) float64

// Build fills an nCols x nRows grid from elevation with a uniform starting
// depth and the default roughness.
func Build(nCols, nRows int, cellSize, depth float64, elevation ElevationFunc) (*grid.Grid, error) {
	if nCols <= 0 || nRows <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", grid.ErrMalformedGrid, nCols, nRows)
	}
	cells := make([]grid.Cell, 0, nCols*nRows)
	for y := 0; y < nRows; y++ {
		for x := 0; x < nCols; x++ {
			cells = append(cells, grid.NewCell(x, y, elevation(x, y), depth))
		}
	}
	return grid.FromCells(nCols, nRows, cellSize, cells)
}

// Flat returns a grid of uniform elevation.
func Flat(nCols, nRows int, cellSize, elevation, depth float64) (*grid.Grid, error) {
	return Build(nCols, nRows, cellSize, depth, func(int, int) float64 { return elevation })
}

// SteppedChannel returns a channel falling along the x axis in three
// reaches of decreasing gradient, ending in a flat basin from column 300
// onwards. Elevation does not vary across rows.
func SteppedChannel(nCols, nRows int, cellSize, depth float64) (*grid.Grid, error) {
	return Build(nCols, nRows, cellSize, depth, func(x, _ int) float64 {
		return SteppedChannelElevation(x)
	})
}

// SteppedChannelElevation is the longitudinal profile used by
// SteppedChannel. It is continuous at the reach boundaries.
func SteppedChannelElevation(x int) float64 {
	fx := float64(x)
	switch {
	case x <= 100:
		return 160 - fx
	case x <= 200:
		return 110 - fx/2
	case x <= 300:
		return 30 - fx/10
	default:
		return 0
	}
}

// NoiseOptions shapes Noise terrain.
type NoiseOptions struct {
	Seed       int64
	Relief     float64 // m between the lowest and highest possible ground
	Wavelength float64 // cells per noise period
}

// Perlin parameters: smoothness, frequency step and octave count.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// Noise returns rolling terrain sampled from seeded 2D Perlin noise. The
// same options always give the same grid.
func Noise(nCols, nRows int, cellSize, depth float64, opts NoiseOptions) (*grid.Grid, error) {
	if !(opts.Wavelength > 0) {
		return nil, fmt.Errorf("terrain: noise wavelength must be positive, got %v", opts.Wavelength)
	}
	if opts.Relief < 0 {
		return nil, fmt.Errorf("terrain: noise relief must be non-negative, got %v", opts.Relief)
	}
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, opts.Seed)
	return Build(nCols, nRows, cellSize, depth, func(x, y int) float64 {
		n := p.Noise2D(float64(x)/opts.Wavelength, float64(y)/opts.Wavelength)
		n = min(max(n, -1), 1)
		return opts.Relief * 0.5 * (n + 1)
	})
}

// FromElevations builds a grid from elevations listed in storage order
// (row by row).
func FromElevations(nCols, nRows int, cellSize float64, elevations []float64, depth float64) (*grid.Grid, error) {
	if nCols <= 0 || nRows <= 0 || len(elevations) != nCols*nRows {
		return nil, fmt.Errorf("%w: %d elevations for a %dx%d grid", grid.ErrMalformedGrid, len(elevations), nCols, nRows)
	}
	return Build(nCols, nRows, cellSize, depth, func(x, y int) float64 {
		return elevations[y*nCols+x]
	})
}

// WithKst sets a uniform Strickler coefficient on every cell of g.
func WithKst(g *grid.Grid, kst float64) (*grid.Grid, error) {
	if !(kst > 0) {
		return nil, fmt.Errorf("%w: kst must be positive, got %v", grid.ErrMalformedGrid, kst)
	}
	for i := range g.Cells {
		g.Cells[i].Kst = kst
	}
	return g, nil
}

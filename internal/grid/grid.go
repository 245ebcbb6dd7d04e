package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrMalformedGrid is wrapped by every construction-time validation failure.
var ErrMalformedGrid = errors.New("grid: malformed grid")

// Grid is a dense 2D raster of square cells.
type Grid struct {
	NCols    int
	NRows    int
	CellSize float64 // edge length of one cell (m)

	Cells []Cell // len = NCols * NRows, index = y*NCols + x
}

// New allocates an empty grid with room for nCols*nRows cells. The caller
// fills Cells (in storage order) before handing the grid to a simulation;
// use FromCells when the cells are already at hand.
func New(nCols, nRows int, cellSize float64) *Grid {
	capacity := 0
	if nCols > 0 && nRows > 0 {
		capacity = nCols * nRows
	}
	return &Grid{
		NCols:    nCols,
		NRows:    nRows,
		CellSize: cellSize,
		Cells:    make([]Cell, 0, capacity),
	}
}

// FromCells builds a grid around cells and validates it.
func FromCells(nCols, nRows int, cellSize float64, cells []Cell) (*Grid, error) {
	g := &Grid{NCols: nCols, NRows: nRows, CellSize: cellSize, Cells: cells}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the structural invariants of the grid: positive
// dimensions and cell size, one cell per position with matching X/Y, and
// physically valid depth and roughness values.
func (g *Grid) Validate() error {
	if g.NCols <= 0 || g.NRows <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrMalformedGrid, g.NCols, g.NRows)
	}
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("%w: cell size must be positive and finite, got %v", ErrMalformedGrid, g.CellSize)
	}
	if want := g.NCols * g.NRows; len(g.Cells) != want {
		return fmt.Errorf("%w: have %d cells, want %d (%d cols x %d rows)",
			ErrMalformedGrid, len(g.Cells), want, g.NCols, g.NRows)
	}
	for i, c := range g.Cells {
		if c.X != i%g.NCols || c.Y != i/g.NCols {
			return fmt.Errorf("%w: cell %d stores position (%d,%d), want (%d,%d)",
				ErrMalformedGrid, i, c.X, c.Y, i%g.NCols, i/g.NCols)
		}
		if c.Depth < 0 || math.IsNaN(c.Depth) || math.IsInf(c.Depth, 0) {
			return fmt.Errorf("%w: cell (%d,%d) has invalid depth %v", ErrMalformedGrid, c.X, c.Y, c.Depth)
		}
		if math.IsNaN(c.Elevation) || math.IsInf(c.Elevation, 0) {
			return fmt.Errorf("%w: cell (%d,%d) has invalid elevation %v", ErrMalformedGrid, c.X, c.Y, c.Elevation)
		}
		if !(c.Kst > 0) {
			return fmt.Errorf("%w: cell (%d,%d) has non-positive kst %v", ErrMalformedGrid, c.X, c.Y, c.Kst)
		}
	}
	return nil
}

// Dims returns the column and row counts.
func (g *Grid) Dims() (cols, rows int) { return g.NCols, g.NRows }

// Idx flattens (x, y) into an index into Cells.
func (g *Grid) Idx(x, y int) int { return y*g.NCols + x }

// checkBounds panics on coordinates outside the grid. The flattened index
// alone would let an x overflow silently wrap into the next row.
func (g *Grid) checkBounds(x, y int) {
	if x < 0 || x >= g.NCols || y < 0 || y >= g.NRows {
		panic(fmt.Sprintf("grid: index out of range: (%d,%d) outside %dx%d", x, y, g.NCols, g.NRows))
	}
}

// Cell returns a copy of the cell at (x, y). Panics when out of range.
func (g *Grid) Cell(x, y int) Cell {
	g.checkBounds(x, y)
	return g.Cells[g.Idx(x, y)]
}

// CellRef returns a pointer to the cell at (x, y) for in-place updates.
// Panics when out of range.
func (g *Grid) CellRef(x, y int) *Cell {
	g.checkBounds(x, y)
	return &g.Cells[g.Idx(x, y)]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		NCols:    g.NCols,
		NRows:    g.NRows,
		CellSize: g.CellSize,
		Cells:    make([]Cell, len(g.Cells), cap(g.Cells)),
	}
	copy(c.Cells, g.Cells)
	return c
}

// CopyFrom overwrites g with a deep copy of src, reusing g's storage when
// it is large enough.
func (g *Grid) CopyFrom(src *Grid) {
	g.NCols = src.NCols
	g.NRows = src.NRows
	g.CellSize = src.CellSize
	if cap(g.Cells) < len(src.Cells) {
		g.Cells = make([]Cell, len(src.Cells))
	} else {
		g.Cells = g.Cells[:len(src.Cells)]
	}
	copy(g.Cells, src.Cells)
}

// Neighbours returns the Moore neighbourhood of (x, y) clipped at the
// edges: 3 cells in a corner, 5 on an edge, 8 in the interior. Order is
// row-major over the 3x3 window with the centre skipped.
func (g *Grid) Neighbours(x, y int) []Cell {
	return g.appendNeighbours(make([]Cell, 0, 8), x, y, false)
}

// NeighboursWithLowerWaterLevel returns the neighbours, in Neighbours
// order, whose water level is strictly below that of (x, y). The result
// is empty when the cell is a local minimum.
func (g *Grid) NeighboursWithLowerWaterLevel(x, y int) []Cell {
	return g.appendNeighbours(make([]Cell, 0, 8), x, y, true)
}

// AppendNeighboursWithLowerWaterLevel is the allocation-free form of
// NeighboursWithLowerWaterLevel used by the stepping loop.
func (g *Grid) AppendNeighboursWithLowerWaterLevel(dst []Cell, x, y int) []Cell {
	return g.appendNeighbours(dst, x, y, true)
}

func (g *Grid) appendNeighbours(dst []Cell, x, y int, lowerOnly bool) []Cell {
	g.checkBounds(x, y)
	level := g.Cells[g.Idx(x, y)].WaterLevel()

	xFrom, xTo := max(x-1, 0), min(x+1, g.NCols-1)
	yFrom, yTo := max(y-1, 0), min(y+1, g.NRows-1)

	for row := yFrom; row <= yTo; row++ {
		for col := xFrom; col <= xTo; col++ {
			if col == x && row == y {
				continue
			}
			n := g.Cells[g.Idx(col, row)]
			if lowerOnly && !(n.WaterLevel() < level) {
				continue
			}
			dst = append(dst, n)
		}
	}
	return dst
}

// WaterVolumeOfCell is the volume of water stored over the footprint of
// (x, y): depth * cellSize^2 (m^3).
func (g *Grid) WaterVolumeOfCell(x, y int) float64 {
	return g.Cell(x, y).Depth * g.CellSize * g.CellSize
}

// Depths returns the depth of every cell in storage order.
func (g *Grid) Depths() []float64 {
	d := make([]float64, len(g.Cells))
	for i := range g.Cells {
		d[i] = g.Cells[i].Depth
	}
	return d
}

// TotalWaterVolume sums the stored water over the whole grid (m^3).
func (g *Grid) TotalWaterVolume() float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	return floats.Sum(g.Depths()) * g.CellSize * g.CellSize
}

// MaxDepth returns the deepest water column, or 0 for an empty grid.
func (g *Grid) MaxDepth() float64 {
	if len(g.Cells) == 0 {
		return 0
	}
	return floats.Max(g.Depths())
}

// WetCellCount counts cells whose depth exceeds threshold.
func (g *Grid) WetCellCount(threshold float64) int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Depth > threshold {
			n++
		}
	}
	return n
}

// Equal reports whether two grids have the same dimensions and every cell
// has the same position, elevation and depth. Roughness is not compared:
// it is a simulation parameter rather than part of the grid state.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.NCols != other.NCols || g.NRows != other.NRows || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		a, b := g.Cells[i], other.Cells[i]
		if a.X != b.X || a.Y != b.Y || a.Elevation != b.Elevation || a.Depth != b.Depth {
			return false
		}
	}
	return true
}

package grid

// DefaultKst is the Gauckler-Strickler roughness assigned to new cells
// (m^(1/3)/s), roughly a natural channel with some vegetation.
const DefaultKst = 30.0

// Cell is the hydraulic state of one raster location.
// Position and elevation are fixed once the grid is built; only Depth
// changes while a simulation runs.
type Cell struct {
	X, Y      int     // column and row index
	Elevation float64 // terrain height (m)
	Depth     float64 // water column height above terrain (m), never negative
	Kst       float64 // Strickler roughness coefficient, > 0
}

// NewCell returns a cell at (x, y) with the default roughness.
func NewCell(x, y int, elevation, depth float64) Cell {
	return Cell{X: x, Y: y, Elevation: elevation, Depth: depth, Kst: DefaultKst}
}

// WaterLevel is the height of the water surface: elevation plus depth.
func (c Cell) WaterLevel() float64 {
	return c.Elevation + c.Depth
}

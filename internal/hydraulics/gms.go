// Package hydraulics implements the Gauckler-Manning-Strickler flow law
// between two neighbouring raster cells.
//
// The exchange between two cells is treated as flow through a
// rectangular channel one cell wide whose water depth is the mean of the
// two depths. All functions are pure.
package hydraulics

import (
	"math"

	"github.com/overland-sim/overland/internal/grid"
)

// Flow is the volumetric flow rate (m^3/s) that can pass from c1 to c2.
func Flow(c1, c2 grid.Cell, cellSize float64) float64 {
	return Area(c1, c2, cellSize) * Velocity(c1, c2, cellSize)
}

// Area is the cross-sectional flow area between the cells (m^2).
func Area(c1, c2 grid.Cell, cellSize float64) float64 {
	return AverageDepth(c1, c2) * cellSize
}

// AverageDepth is the mean water depth of the two cells (m).
func AverageDepth(c1, c2 grid.Cell) float64 {
	return 0.5 * (c1.Depth + c2.Depth)
}

// Velocity is the Strickler mean flow velocity (m/s):
// kst * R^(2/3) * sqrt(slope).
//
// The slope must be non-negative, that is c1 must not lie below c2;
// callers only ask for flow towards lower neighbours.
func Velocity(c1, c2 grid.Cell, cellSize float64) float64 {
	return AverageKst(c1, c2) *
		math.Pow(HydraulicRadius(c1, c2, cellSize), 2.0/3.0) *
		math.Sqrt(HydraulicSlope(c1, c2, cellSize))
}

// AverageKst is the mean Strickler roughness of the two cells.
func AverageKst(c1, c2 grid.Cell) float64 {
	return 0.5 * (c1.Kst + c2.Kst)
}

// HydraulicRadius is area over wetted perimeter (m). Two dry cells have a
// radius of zero.
func HydraulicRadius(c1, c2 grid.Cell, cellSize float64) float64 {
	if c1.Depth == 0 && c2.Depth == 0 {
		return 0
	}
	return Area(c1, c2, cellSize) / WettedPerimeter(c1, c2, cellSize)
}

// WettedPerimeter of the rectangular section: both banks plus the bed (m).
func WettedPerimeter(c1, c2 grid.Cell, cellSize float64) float64 {
	return 2*AverageDepth(c1, c2) + cellSize
}

// HydraulicSlope is the water surface gradient from c1 to c2. Positive
// when c1 stands higher.
func HydraulicSlope(c1, c2 grid.Cell, cellSize float64) float64 {
	return (c1.WaterLevel() - c2.WaterLevel()) / cellSize
}

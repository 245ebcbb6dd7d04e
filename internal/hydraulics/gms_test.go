package hydraulics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overland-sim/overland/internal/grid"
)

const tolerance = 1e-4

// reference pair: upper cell 1.5 m + 0.25 m water, lower cell 1.0 m + 0.5 m water
func referenceCells() (grid.Cell, grid.Cell) {
	return grid.NewCell(0, 0, 1.5, 0.25), grid.NewCell(0, 0, 1.0, 0.5)
}

func TestHydraulicSlope(t *testing.T) {
	c1, c2 := referenceCells()
	assert.Equal(t, 0.25, HydraulicSlope(c1, c2, 1.0))
	assert.Equal(t, -0.25, HydraulicSlope(c2, c1, 1.0), "slope is signed")
	assert.Equal(t, 0.125, HydraulicSlope(c1, c2, 2.0))
}

func TestWettedPerimeter(t *testing.T) {
	c1, c2 := referenceCells()
	assert.Equal(t, 1.0+0.25+0.5, WettedPerimeter(c1, c2, 1.0))
}

func TestArea(t *testing.T) {
	c1, c2 := referenceCells()
	assert.Equal(t, 1.0*0.5*(0.25+0.5), Area(c1, c2, 1.0))
}

func TestHydraulicRadius(t *testing.T) {
	c1, c2 := referenceCells()
	assert.Equal(t, (1.0*0.5*(0.25+0.5))/(1.0+0.25+0.5), HydraulicRadius(c1, c2, 1.0))
	assert.InDelta(t, 0.2143, HydraulicRadius(c1, c2, 1.0), tolerance)

	c1.Depth, c2.Depth = 0, 0
	for _, size := range []float64{0.5, 1, 10} {
		assert.Equal(t, 0.0, HydraulicRadius(c1, c2, size), "dry pair at cell size %v", size)
	}
}

func TestAverageKst(t *testing.T) {
	c1, c2 := referenceCells()
	c2.Kst = 10.0
	assert.Equal(t, 0.5*(10.0+30.0), AverageKst(c1, c2))
}

func TestAverageDepth(t *testing.T) {
	c1, c2 := referenceCells()
	c2.Kst = 10.0
	assert.Equal(t, 0.5*(0.25+0.5), AverageDepth(c1, c2))
}

func TestVelocity(t *testing.T) {
	c1, c2 := referenceCells()
	v := Velocity(c1, c2, 1.0)
	require.False(t, math.IsNaN(v))
	assert.InDelta(t, 5.37139064460491, v, tolerance)
}

func TestFlow(t *testing.T) {
	c1, c2 := referenceCells()
	assert.InDelta(t, 2.01427149172684, Flow(c1, c2, 1.0), tolerance)
}

func TestFlow_ZeroCases(t *testing.T) {
	c1, c2 := referenceCells()

	// equal water levels: no gradient, no flow
	level := grid.NewCell(0, 0, 1.0, 0.5)
	assert.Equal(t, 0.0, Flow(level, level, 1.0))

	// dry pair: zero radius and zero area
	c1.Depth, c2.Depth = 0, 0
	assert.Equal(t, 0.0, Flow(c1, c2, 1.0))
}

func TestFlow_ScalesWithRoughness(t *testing.T) {
	c1, c2 := referenceCells()
	base := Flow(c1, c2, 1.0)

	c1.Kst, c2.Kst = 60, 60
	assert.InDelta(t, 2*base, Flow(c1, c2, 1.0), 1e-9, "flow is linear in kst")
}

package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/overland-sim/overland/internal/fsutil"
	"github.com/overland-sim/overland/internal/grid"
	"github.com/overland-sim/overland/internal/monitoring"
)

const heatMapColors = 64

// depthXYZ adapts a grid to plotter.GridXYZ. Plot rows run bottom to top,
// so grid row 0 ends up along the top edge as in the depth rasters.
type depthXYZ struct {
	g        *grid.Grid
	maxDepth float64
}

func (d depthXYZ) Dims() (c, r int) { return d.g.NCols, d.g.NRows }

func (d depthXYZ) Z(c, r int) float64 { return d.g.Cell(c, d.g.NRows-1-r).Depth }

func (d depthXYZ) X(c int) float64 { return (float64(c) + 0.5) * d.g.CellSize }

func (d depthXYZ) Y(r int) float64 { return (float64(r) + 0.5) * d.g.CellSize }

func (d depthXYZ) Min() float64 { return 0 }

func (d depthXYZ) Max() float64 { return d.maxDepth }

// HeatMap builds a labelled depth map of g with a fixed 0..maxDepth colour
// range, so maps from different steps are comparable.
func HeatMap(g *grid.Grid, maxDepth float64, title string) *plot.Plot {
	pal := palette.Heat(heatMapColors, 1)
	hm := plotter.NewHeatMap(depthXYZ{g: g, maxDepth: maxDepth}, pal)
	hm.Rasterized = true
	colors := pal.Colors()
	hm.Overflow = colors[len(colors)-1]

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(hm)
	return p
}

// heatMapSize keeps the aspect of the grid, bounded to a sensible page.
func heatMapSize(g *grid.Grid) (w, h vg.Length) {
	w = 14 * vg.Inch
	aspect := float64(g.NRows) / float64(g.NCols)
	h = vg.Length(float64(w) * aspect)
	h = max(h, 3*vg.Inch)
	h = min(h, 14*vg.Inch)
	return w, h
}

// WriteHeatMap renders the depth heat map of g as a PNG at path.
func WriteHeatMap(fsys fsutil.FileSystem, path string, g *grid.Grid, maxDepth float64, title string) error {
	p := HeatMap(g, maxDepth, title)
	w, h := heatMapSize(g)
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("heat map writer: %w", err)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create heat map: %w", err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write heat map: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close heat map: %w", err)
	}
	monitoring.Logf("render: wrote heat map %s", path)
	return nil
}

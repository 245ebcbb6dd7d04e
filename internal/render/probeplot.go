package render

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/overland-sim/overland/internal/fsutil"
	"github.com/overland-sim/overland/internal/monitoring"
	"github.com/overland-sim/overland/internal/simulation"
	"github.com/overland-sim/overland/internal/units"
)

// ProbePlotter draws the depth series of every probe of a run as lines on
// one time axis.
type ProbePlotter struct {
	fs        fsutil.FileSystem
	outputDir string
	depthUnit string
}

// NewProbePlotter writes into outputDir, reporting depth in depthUnit
// (see package units).
func NewProbePlotter(fsys fsutil.FileSystem, outputDir, depthUnit string) *ProbePlotter {
	if !units.IsValidDepth(depthUnit) {
		depthUnit = units.M
	}
	return &ProbePlotter{fs: fsys, outputDir: outputDir, depthUnit: depthUnit}
}

// Plot builds the probe depth plot from rec.
func (pp *ProbePlotter) Plot(rec *simulation.ProbeRecorder) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Probe depth"
	p.X.Label.Text = "Simulated time (s)"
	p.Y.Label.Text = fmt.Sprintf("Depth (%s)", pp.depthUnit)

	probes := rec.Probes()
	colors := generateColors(len(probes))
	for i, probe := range probes {
		samples := rec.Series(i)
		if len(samples) == 0 {
			continue
		}
		pts := make(plotter.XYs, 0, len(samples))
		for _, s := range samples {
			pts = append(pts, plotter.XY{X: s.Time, Y: units.ConvertDepth(s.Depth, pp.depthUnit)})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", probe.Name, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (%d,%d)", probe.Name, probe.X, probe.Y), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// Write renders the probe plot to <outputDir>/probes.png and returns the
// path written.
func (pp *ProbePlotter) Write(rec *simulation.ProbeRecorder) (string, error) {
	if pp.outputDir == "" {
		return "", fmt.Errorf("no output directory configured")
	}
	p, err := pp.Plot(rec)
	if err != nil {
		return "", err
	}
	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return "", fmt.Errorf("probe plot writer: %w", err)
	}

	path := filepath.Join(pp.outputDir, "probes.png")
	f, err := pp.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create probe plot: %w", err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("save probe plot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close probe plot: %w", err)
	}
	monitoring.Logf("render: wrote probe plot %s (%d probes)", path, len(rec.Probes()))
	return path, nil
}

// generateColors creates a palette of distinct colors for probe lines
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

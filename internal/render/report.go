package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/overland-sim/overland/internal/fsutil"
	"github.com/overland-sim/overland/internal/monitoring"
	"github.com/overland-sim/overland/internal/simulation"
	"github.com/overland-sim/overland/internal/units"
)

// Report collects progress ticks of one run and renders them as a
// standalone HTML page.
type Report struct {
	RunID      string
	VolumeUnit string // see package units
	Progress   []simulation.Progress
}

// NewReport starts an empty report for runID with volumes shown in
// volumeUnit. Unknown units fall back to cubic metres.
func NewReport(runID, volumeUnit string) *Report {
	if !units.IsValidVolume(volumeUnit) {
		volumeUnit = units.M3
	}
	return &Report{RunID: runID, VolumeUnit: volumeUnit}
}

// Add records one progress tick.
func (r *Report) Add(p simulation.Progress) {
	r.Progress = append(r.Progress, p)
}

func (r *Report) timeAxis() []string {
	x := make([]string, len(r.Progress))
	for i, p := range r.Progress {
		x[i] = fmt.Sprintf("%.3f", p.ElapsedSeconds)
	}
	return x
}

func (r *Report) lineChart(title, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Overland run " + r.RunID, Width: "1200px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("run=%s ticks=%d", r.RunID, len(r.Progress))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	return line.SetXAxis(r.timeAxis())
}

// Render writes the report page to w. rec may be nil when no probes were
// recorded.
func (r *Report) Render(w io.Writer, rec *simulation.ProbeRecorder) error {
	volume := make([]opts.LineData, len(r.Progress))
	depth := make([]opts.LineData, len(r.Progress))
	wet := make([]opts.LineData, len(r.Progress))
	for i, p := range r.Progress {
		volume[i] = opts.LineData{Value: units.ConvertVolume(p.TotalVolume, r.VolumeUnit)}
		depth[i] = opts.LineData{Value: p.MaxDepth}
		wet[i] = opts.LineData{Value: p.WetCells}
	}

	volumeChart := r.lineChart("Total water volume", r.VolumeUnit).AddSeries("volume", volume)
	depthChart := r.lineChart("Maximum depth", "m").AddSeries("max depth", depth)
	wetChart := r.lineChart("Wet cells", "cells").AddSeries("wet", wet)

	page := components.NewPage()
	page.SetPageTitle("Overland run " + r.RunID)
	page.AddCharts(volumeChart, depthChart, wetChart)

	if rec != nil && len(rec.Probes()) > 0 {
		probeChart := charts.NewLine()
		probeChart.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "420px"}),
			charts.WithTitleOpts(opts.Title{Title: "Probe depth"}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "m"}),
		)
		var x []string
		for i, probe := range rec.Probes() {
			samples := rec.Series(i)
			if x == nil {
				x = make([]string, len(samples))
				for k, s := range samples {
					x[k] = fmt.Sprintf("%.3f", s.Time)
				}
			}
			data := make([]opts.LineData, len(samples))
			for k, s := range samples {
				data[k] = opts.LineData{Value: s.Depth}
			}
			probeChart.AddSeries(probe.Name, data)
		}
		probeChart.SetXAxis(x)
		page.AddCharts(probeChart)
	}

	return page.Render(w)
}

// Write renders the report into path.
func (r *Report) Write(fsys fsutil.FileSystem, path string, rec *simulation.ProbeRecorder) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, rec); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	monitoring.Logf("render: wrote report %s (%d ticks)", path, len(r.Progress))
	return nil
}

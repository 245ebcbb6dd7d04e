// Command overland runs an overland flow simulation on a synthetic
// terrain, writing depth frames, a heat map, probe plots and an HTML
// report for the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/overland-sim/overland/internal/config"
	"github.com/overland-sim/overland/internal/fsutil"
	"github.com/overland-sim/overland/internal/grid"
	"github.com/overland-sim/overland/internal/render"
	"github.com/overland-sim/overland/internal/simulation"
	"github.com/overland-sim/overland/internal/terrain"
	"github.com/overland-sim/overland/internal/units"
	"github.com/overland-sim/overland/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to a JSON run configuration (defaults are used when empty)")
	stepsFlag   = flag.Int("steps", -1, "Override the number of timesteps")
	outFlag     = flag.String("out", "", "Override the output directory")
	terrainFlag = flag.String("terrain", "", "Override the terrain (flat, stepped_channel, noise)")
	noFrames    = flag.Bool("no-frames", false, "Skip the per-report depth frames")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := applyOverrides(cfg, *stepsFlag, *outFlag, *terrainFlag); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := run(ctx, cfg, fsutil.OSFileSystem{}, runOptions{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Frames:  !*noFrames,
	})
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Printf("run %s finished: %d steps, %.3f s simulated, %.6g %s of water, output in %s",
		summary.RunID, summary.Steps, summary.ElapsedSeconds, summary.FinalVolume, summary.VolumeUnit, summary.OutputDir)
}

// loadConfig reads path, or returns the built-in defaults when path is empty.
func loadConfig(path string) (*config.RunConfig, error) {
	if path == "" {
		return config.EmptyRunConfig(), nil
	}
	return config.LoadRunConfig(path)
}

// applyOverrides folds command-line overrides into cfg. A negative steps
// value and empty strings leave the configured value alone.
func applyOverrides(cfg *config.RunConfig, steps int, out, terrainName string) error {
	if steps >= 0 {
		cfg.Steps = &steps
	}
	if out != "" {
		cfg.OutputDir = &out
	}
	if terrainName != "" {
		cfg.Terrain = &terrainName
	}
	return cfg.Validate()
}

// buildGrid creates the initial grid described by cfg.
func buildGrid(cfg *config.RunConfig) (*grid.Grid, error) {
	cols, rows := cfg.GetCols(), cfg.GetRows()
	cellSize, depth := cfg.GetCellSize(), cfg.GetStartingDepth()

	var g *grid.Grid
	var err error
	switch cfg.GetTerrain() {
	case config.TerrainFlat:
		g, err = terrain.Flat(cols, rows, cellSize, cfg.GetFlatElevation(), depth)
	case config.TerrainSteppedChannel:
		g, err = terrain.SteppedChannel(cols, rows, cellSize, depth)
	case config.TerrainNoise:
		g, err = terrain.Noise(cols, rows, cellSize, depth, terrain.NoiseOptions{
			Seed:       cfg.GetNoiseSeed(),
			Relief:     cfg.GetNoiseRelief(),
			Wavelength: cfg.GetNoiseWavelength(),
		})
	default:
		return nil, fmt.Errorf("unknown terrain %q", cfg.GetTerrain())
	}
	if err != nil {
		return nil, fmt.Errorf("build %s terrain: %w", cfg.GetTerrain(), err)
	}
	return terrain.WithKst(g, cfg.GetKst())
}

type runOptions struct {
	RunID   string
	Started time.Time
	Frames  bool
}

type runSummary struct {
	RunID          string
	OutputDir      string
	Steps          int
	ElapsedSeconds float64
	FinalVolume    float64 // in VolumeUnit
	VolumeUnit     string
}

func run(ctx context.Context, cfg *config.RunConfig, fsys fsutil.FileSystem, ro runOptions) (runSummary, error) {
	g, err := buildGrid(cfg)
	if err != nil {
		return runSummary{}, err
	}
	sim, err := simulation.New(g)
	if err != nil {
		return runSummary{}, err
	}

	probes := make([]simulation.Probe, 0, len(cfg.GetProbes()))
	for _, p := range cfg.GetProbes() {
		probes = append(probes, simulation.Probe{Name: p.Name, X: p.X, Y: p.Y})
	}
	rec, err := simulation.NewProbeRecorder(g, probes)
	if err != nil {
		return runSummary{}, err
	}

	outDir := render.MakeRunOutputDir(cfg.GetOutputDir(), ro.RunID, ro.Started)
	if err := fsys.MkdirAll(outDir, 0755); err != nil {
		return runSummary{}, fmt.Errorf("failed to create output dir: %w", err)
	}

	steps, dt := cfg.GetSteps(), cfg.GetTimestep()
	depthUnit, volumeUnit := cfg.GetDepthUnits(), cfg.GetVolumeUnits()
	report := render.NewReport(ro.RunID, volumeUnit)

	log.Printf("run %s: %dx%d cells on %s terrain, %.3f minutes simulated in %d steps of %gs",
		ro.RunID, g.NCols, g.NRows, cfg.GetTerrain(), dt*float64(steps)/60, steps, dt)

	onProgress := func(p simulation.Progress) error {
		report.Add(p)
		rec.Record(sim.Grid, p.Step, p.ElapsedSeconds)
		log.Printf("step %d of %d: total water %.6g %s, max depth %.4f %s",
			p.Step, p.TotalSteps, units.ConvertVolume(p.TotalVolume, volumeUnit), volumeUnit,
			units.ConvertDepth(p.MaxDepth, depthUnit), depthUnit)
		for i, probe := range rec.Probes() {
			s, _ := rec.Latest(i)
			log.Printf("step %d of %d: depth at %s (%d, %d): %.4f %s",
				p.Step, p.TotalSteps, probe.Name, probe.X, probe.Y, units.ConvertDepth(s.Depth, depthUnit), depthUnit)
		}
		if !ro.Frames {
			return nil
		}
		frame := filepath.Join(outDir, render.FrameName(p.Step, frameExt(cfg.GetImageFormat())))
		return render.WriteDepthImage(fsys, frame, sim.Grid, cfg.GetMaxRenderDepth())
	}

	runErr := sim.Run(ctx, simulation.RunOptions{
		Steps:       steps,
		Timestep:    dt,
		ReportEvery: cfg.GetReportEvery(),
		OnProgress:  onProgress,
	})
	if runErr != nil && ctx.Err() == nil {
		return runSummary{}, runErr
	}

	// Interrupted runs still get their summary outputs.
	final := sim.Snapshot()
	title := fmt.Sprintf("Depth after %d steps (%.3f s)", sim.Steps(), sim.ElapsedSeconds())
	if err := render.WriteHeatMap(fsys, filepath.Join(outDir, "heatmap.png"), final, cfg.GetMaxRenderDepth(), title); err != nil {
		return runSummary{}, err
	}
	if _, err := render.NewProbePlotter(fsys, outDir, depthUnit).Write(rec); err != nil {
		return runSummary{}, err
	}
	if err := report.Write(fsys, filepath.Join(outDir, "report.html"), rec); err != nil {
		return runSummary{}, err
	}

	return runSummary{
		RunID:          ro.RunID,
		OutputDir:      outDir,
		Steps:          sim.Steps(),
		ElapsedSeconds: sim.ElapsedSeconds(),
		FinalVolume:    units.ConvertVolume(final.TotalWaterVolume(), volumeUnit),
		VolumeUnit:     volumeUnit,
	}, runErr
}

func frameExt(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

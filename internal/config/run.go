package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/overland-sim/overland/internal/units"
)

// DefaultConfigPath is the path to the canonical run defaults file.
const DefaultConfigPath = "config/run.defaults.json"

// Terrain preset names understood by the driver.
const (
	TerrainFlat           = "flat"
	TerrainSteppedChannel = "stepped_channel"
	TerrainNoise          = "noise"
)

// ValidTerrains lists the accepted terrain values.
var ValidTerrains = []string{TerrainFlat, TerrainSteppedChannel, TerrainNoise}

// RunConfig describes one simulation run: the grid, the initial water,
// the time stepping and what gets written out. Omitted fields fall back
// to the defaults returned by the Get* methods, so partial files are safe.
type RunConfig struct {
	// Grid
	Cols     *int     `json:"cols,omitempty"`
	Rows     *int     `json:"rows,omitempty"`
	CellSize *float64 `json:"cell_size,omitempty"` // metres

	// Terrain and initial state
	Terrain         *string  `json:"terrain,omitempty"`
	StartingDepth   *float64 `json:"starting_depth,omitempty"` // metres
	Kst             *float64 `json:"kst,omitempty"`
	FlatElevation   *float64 `json:"flat_elevation,omitempty"`
	NoiseSeed       *int64   `json:"noise_seed,omitempty"`
	NoiseRelief     *float64 `json:"noise_relief,omitempty"`     // metres
	NoiseWavelength *float64 `json:"noise_wavelength,omitempty"` // cells

	// Time stepping
	Timestep    *float64 `json:"timestep,omitempty"` // seconds
	Steps       *int     `json:"steps,omitempty"`
	ReportEvery *int     `json:"report_every,omitempty"`

	// Output
	OutputDir      *string  `json:"output_dir,omitempty"`
	ImageFormat    *string  `json:"image_format,omitempty"` // "jpg" or "png"
	MaxRenderDepth *float64 `json:"max_render_depth,omitempty"`
	DepthUnits     *string  `json:"depth_units,omitempty"`
	VolumeUnits    *string  `json:"volume_units,omitempty"`

	// Probe cells whose depth is logged and plotted
	Probes []ProbeConfig `json:"probes,omitempty"`
}

// ProbeConfig names one cell to observe.
type ProbeConfig struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// EmptyRunConfig returns a RunConfig with all fields set to nil.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical run defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *RunConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/<pkg>/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadRunConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable. Only set fields
// are checked; defaults are valid by construction.
func (c *RunConfig) Validate() error {
	if c.Cols != nil && *c.Cols <= 0 {
		return fmt.Errorf("cols must be positive, got %d", *c.Cols)
	}
	if c.Rows != nil && *c.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", *c.Rows)
	}
	if c.CellSize != nil && !(*c.CellSize > 0) {
		return fmt.Errorf("cell_size must be positive, got %f", *c.CellSize)
	}
	if c.StartingDepth != nil && *c.StartingDepth < 0 {
		return fmt.Errorf("starting_depth must be non-negative, got %f", *c.StartingDepth)
	}
	if c.Kst != nil && !(*c.Kst > 0) {
		return fmt.Errorf("kst must be positive, got %f", *c.Kst)
	}
	if c.Terrain != nil && !contains(ValidTerrains, *c.Terrain) {
		return fmt.Errorf("unknown terrain %q (valid: %s)", *c.Terrain, strings.Join(ValidTerrains, ", "))
	}
	if c.NoiseWavelength != nil && !(*c.NoiseWavelength > 0) {
		return fmt.Errorf("noise_wavelength must be positive, got %f", *c.NoiseWavelength)
	}
	if c.NoiseRelief != nil && *c.NoiseRelief < 0 {
		return fmt.Errorf("noise_relief must be non-negative, got %f", *c.NoiseRelief)
	}
	if c.Timestep != nil && !(*c.Timestep > 0) {
		return fmt.Errorf("timestep must be positive, got %f", *c.Timestep)
	}
	if c.Steps != nil && *c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", *c.Steps)
	}
	if c.ReportEvery != nil && *c.ReportEvery < 0 {
		return fmt.Errorf("report_every must be non-negative, got %d", *c.ReportEvery)
	}
	if c.ImageFormat != nil {
		switch *c.ImageFormat {
		case "png", "jpg", "jpeg":
		default:
			return fmt.Errorf("image_format must be png or jpg, got %q", *c.ImageFormat)
		}
	}
	if c.MaxRenderDepth != nil && !(*c.MaxRenderDepth > 0) {
		return fmt.Errorf("max_render_depth must be positive, got %f", *c.MaxRenderDepth)
	}
	if c.DepthUnits != nil && !units.IsValidDepth(*c.DepthUnits) {
		return fmt.Errorf("depth_units must be one of %s, got %q", units.GetValidDepthUnitsString(), *c.DepthUnits)
	}
	if c.VolumeUnits != nil && !units.IsValidVolume(*c.VolumeUnits) {
		return fmt.Errorf("volume_units must be one of %s, got %q", units.GetValidVolumeUnitsString(), *c.VolumeUnits)
	}

	cols, rows := c.GetCols(), c.GetRows()
	for i, p := range c.Probes {
		if p.X < 0 || p.X >= cols || p.Y < 0 || p.Y >= rows {
			return fmt.Errorf("probe %d (%s) at (%d,%d) lies outside the %dx%d grid", i, p.Name, p.X, p.Y, cols, rows)
		}
	}
	return nil
}

// GetCols returns the cols value or the default.
func (c *RunConfig) GetCols() int {
	if c.Cols == nil {
		return 400
	}
	return *c.Cols
}

// GetRows returns the rows value or the default.
func (c *RunConfig) GetRows() int {
	if c.Rows == nil {
		return 20
	}
	return *c.Rows
}

// GetCellSize returns the cell_size value or the default.
func (c *RunConfig) GetCellSize() float64 {
	if c.CellSize == nil {
		return 1.0
	}
	return *c.CellSize
}

// GetTerrain returns the terrain value or the default.
func (c *RunConfig) GetTerrain() string {
	if c.Terrain == nil {
		return TerrainSteppedChannel
	}
	return *c.Terrain
}

// GetStartingDepth returns the starting_depth value or the default.
func (c *RunConfig) GetStartingDepth() float64 {
	if c.StartingDepth == nil {
		return 0.5
	}
	return *c.StartingDepth
}

// GetKst returns the kst value or the default.
func (c *RunConfig) GetKst() float64 {
	if c.Kst == nil {
		return 30.0
	}
	return *c.Kst
}

// GetFlatElevation returns the flat_elevation value or the default.
func (c *RunConfig) GetFlatElevation() float64 {
	if c.FlatElevation == nil {
		return 0
	}
	return *c.FlatElevation
}

// GetNoiseSeed returns the noise_seed value or the default.
func (c *RunConfig) GetNoiseSeed() int64 {
	if c.NoiseSeed == nil {
		return 1
	}
	return *c.NoiseSeed
}

// GetNoiseRelief returns the noise_relief value or the default.
func (c *RunConfig) GetNoiseRelief() float64 {
	if c.NoiseRelief == nil {
		return 5.0
	}
	return *c.NoiseRelief
}

// GetNoiseWavelength returns the noise_wavelength value or the default.
func (c *RunConfig) GetNoiseWavelength() float64 {
	if c.NoiseWavelength == nil {
		return 40.0
	}
	return *c.NoiseWavelength
}

// GetTimestep returns the timestep value or the default.
func (c *RunConfig) GetTimestep() float64 {
	if c.Timestep == nil {
		return 0.001
	}
	return *c.Timestep
}

// GetSteps returns the steps value or the default.
func (c *RunConfig) GetSteps() int {
	if c.Steps == nil {
		return 100000
	}
	return *c.Steps
}

// GetReportEvery returns the report_every value or the default.
func (c *RunConfig) GetReportEvery() int {
	if c.ReportEvery == nil {
		return 1000
	}
	return *c.ReportEvery
}

// GetOutputDir returns the output_dir value or the default.
func (c *RunConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "temp"
	}
	return *c.OutputDir
}

// GetImageFormat returns the image_format value or the default.
func (c *RunConfig) GetImageFormat() string {
	if c.ImageFormat == nil {
		return "jpg"
	}
	return *c.ImageFormat
}

// GetMaxRenderDepth returns the max_render_depth value or the default.
func (c *RunConfig) GetMaxRenderDepth() float64 {
	if c.MaxRenderDepth == nil {
		return 0.5
	}
	return *c.MaxRenderDepth
}

// GetDepthUnits returns the depth_units value or the default.
func (c *RunConfig) GetDepthUnits() string {
	if c.DepthUnits == nil {
		return units.M
	}
	return *c.DepthUnits
}

// GetVolumeUnits returns the volume_units value or the default.
func (c *RunConfig) GetVolumeUnits() string {
	if c.VolumeUnits == nil {
		return units.M3
	}
	return *c.VolumeUnits
}

// GetProbes returns the configured probes, or a single probe at (350, 10)
// clipped into the grid when none are configured.
func (c *RunConfig) GetProbes() []ProbeConfig {
	if len(c.Probes) > 0 {
		return c.Probes
	}
	return []ProbeConfig{{
		Name: "probe",
		X:    min(350, c.GetCols()-1),
		Y:    min(10, c.GetRows()-1),
	}}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

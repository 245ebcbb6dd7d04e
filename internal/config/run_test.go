package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestEmptyRunConfigDefaults(t *testing.T) {
	cfg := EmptyRunConfig()

	if cfg.GetCols() != 400 || cfg.GetRows() != 20 {
		t.Errorf("grid = %dx%d, want 400x20", cfg.GetCols(), cfg.GetRows())
	}
	if cfg.GetCellSize() != 1.0 {
		t.Errorf("GetCellSize() = %f, want 1.0", cfg.GetCellSize())
	}
	if cfg.GetTerrain() != TerrainSteppedChannel {
		t.Errorf("GetTerrain() = %q, want %q", cfg.GetTerrain(), TerrainSteppedChannel)
	}
	if cfg.GetStartingDepth() != 0.5 {
		t.Errorf("GetStartingDepth() = %f, want 0.5", cfg.GetStartingDepth())
	}
	if cfg.GetKst() != 30.0 {
		t.Errorf("GetKst() = %f, want 30", cfg.GetKst())
	}
	if cfg.GetTimestep() != 0.001 {
		t.Errorf("GetTimestep() = %f, want 0.001", cfg.GetTimestep())
	}
	if cfg.GetSteps() != 100000 {
		t.Errorf("GetSteps() = %d, want 100000", cfg.GetSteps())
	}
	if cfg.GetOutputDir() != "temp" {
		t.Errorf("GetOutputDir() = %q, want temp", cfg.GetOutputDir())
	}
	if cfg.GetImageFormat() != "jpg" {
		t.Errorf("GetImageFormat() = %q, want jpg", cfg.GetImageFormat())
	}
	if cfg.GetVolumeUnits() != "m3" {
		t.Errorf("GetVolumeUnits() = %q, want m3", cfg.GetVolumeUnits())
	}
	if cfg.GetDepthUnits() != "m" {
		t.Errorf("GetDepthUnits() = %q, want m", cfg.GetDepthUnits())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty config should validate: %v", err)
	}
}

func TestGetProbesDefaultClipsIntoGrid(t *testing.T) {
	cols, rows := 50, 5
	cfg := &RunConfig{Cols: &cols, Rows: &rows}

	probes := cfg.GetProbes()
	if len(probes) != 1 {
		t.Fatalf("expected one default probe, got %d", len(probes))
	}
	if probes[0].X != 49 || probes[0].Y != 4 {
		t.Errorf("default probe at (%d,%d), want (49,4)", probes[0].X, probes[0].Y)
	}

	cfg = EmptyRunConfig()
	if p := cfg.GetProbes()[0]; p.X != 350 || p.Y != 10 {
		t.Errorf("default probe at (%d,%d), want (350,10)", p.X, p.Y)
	}
}

func TestLoadRunConfig(t *testing.T) {
	path := writeConfig(t, "run.json", `{
  "cols": 40,
  "rows": 8,
  "cell_size": 2.5,
  "terrain": "noise",
  "noise_seed": 42,
  "timestep": 0.01,
  "steps": 50,
  "image_format": "png",
  "depth_units": "mm",
  "volume_units": "l",
  "probes": [{"name": "outlet", "x": 39, "y": 4}]
}`)

	cfg, err := LoadRunConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetCols() != 40 || cfg.GetRows() != 8 {
		t.Errorf("grid = %dx%d, want 40x8", cfg.GetCols(), cfg.GetRows())
	}
	if cfg.GetCellSize() != 2.5 {
		t.Errorf("GetCellSize() = %f, want 2.5", cfg.GetCellSize())
	}
	if cfg.GetTerrain() != TerrainNoise {
		t.Errorf("GetTerrain() = %q, want noise", cfg.GetTerrain())
	}
	if cfg.GetNoiseSeed() != 42 {
		t.Errorf("GetNoiseSeed() = %d, want 42", cfg.GetNoiseSeed())
	}
	if cfg.GetSteps() != 50 || cfg.GetTimestep() != 0.01 {
		t.Errorf("steps/timestep = %d/%f", cfg.GetSteps(), cfg.GetTimestep())
	}
	if cfg.GetImageFormat() != "png" || cfg.GetDepthUnits() != "mm" || cfg.GetVolumeUnits() != "l" {
		t.Errorf("output = %q/%q/%q", cfg.GetImageFormat(), cfg.GetDepthUnits(), cfg.GetVolumeUnits())
	}
	probes := cfg.GetProbes()
	if len(probes) != 1 || probes[0].Name != "outlet" || probes[0].X != 39 {
		t.Errorf("probes = %+v", probes)
	}

	// Unset fields keep their defaults.
	if cfg.GetStartingDepth() != 0.5 {
		t.Errorf("GetStartingDepth() = %f, want default 0.5", cfg.GetStartingDepth())
	}
}

func TestLoadRunConfig_InvalidExtension(t *testing.T) {
	path := writeConfig(t, "run.yaml", `{}`)
	_, err := LoadRunConfig(path)
	if err == nil || !strings.Contains(err.Error(), ".json") {
		t.Fatalf("expected extension error, got %v", err)
	}
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	if _, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRunConfig_BadJSON(t *testing.T) {
	path := writeConfig(t, "bad.json", `{"cols": "wide"}`)
	_, err := LoadRunConfig(path)
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRunConfig_TooLarge(t *testing.T) {
	body := `{"output_dir": "` + strings.Repeat("a", 1024*1024) + `"}`
	path := writeConfig(t, "huge.json", body)
	_, err := LoadRunConfig(path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"zero cols", `{"cols": 0}`, "cols"},
		{"negative rows", `{"rows": -1}`, "rows"},
		{"zero cell size", `{"cell_size": 0}`, "cell_size"},
		{"negative depth", `{"starting_depth": -0.1}`, "starting_depth"},
		{"zero kst", `{"kst": 0}`, "kst"},
		{"unknown terrain", `{"terrain": "mountains"}`, "unknown terrain"},
		{"zero wavelength", `{"noise_wavelength": 0}`, "noise_wavelength"},
		{"negative relief", `{"noise_relief": -2}`, "noise_relief"},
		{"zero timestep", `{"timestep": 0}`, "timestep"},
		{"negative steps", `{"steps": -5}`, "steps"},
		{"negative report", `{"report_every": -1}`, "report_every"},
		{"bad format", `{"image_format": "gif"}`, "image_format"},
		{"zero render depth", `{"max_render_depth": 0}`, "max_render_depth"},
		{"bad units", `{"depth_units": "ft"}`, "m, cm, mm"},
		{"bad volume units", `{"volume_units": "gal"}`, "m3, l"},
		{"depth unit as volume", `{"volume_units": "mm"}`, "volume_units"},
		{"probe outside", `{"cols": 10, "rows": 10, "probes": [{"name": "p", "x": 10, "y": 0}]}`, "outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "run.json", tt.body)
			_, err := LoadRunConfig(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	if cfg.Cols == nil || *cfg.Cols != 400 {
		t.Errorf("defaults file cols = %v, want 400", cfg.Cols)
	}
	if cfg.Timestep == nil || *cfg.Timestep != 0.001 {
		t.Errorf("defaults file timestep = %v, want 0.001", cfg.Timestep)
	}
	if cfg.GetTerrain() != TerrainSteppedChannel {
		t.Errorf("defaults file terrain = %q", cfg.GetTerrain())
	}

	// The defaults file and the built-in getters must agree.
	empty := EmptyRunConfig()
	if cfg.GetSteps() != empty.GetSteps() || cfg.GetKst() != empty.GetKst() ||
		cfg.GetImageFormat() != empty.GetImageFormat() || cfg.GetVolumeUnits() != empty.GetVolumeUnits() {
		t.Errorf("defaults file disagrees with built-in defaults")
	}
}

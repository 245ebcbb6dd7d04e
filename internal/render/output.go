package render

import (
	"fmt"
	"path/filepath"
	"time"
)

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakeRunOutputDir names the directory holding one run's files:
// <base>/<timestamp>_<runID>. The directory is not created.
func MakeRunOutputDir(base, runID string, started time.Time) string {
	return filepath.Join(base, FormatTimestamp(started)+"_"+runID)
}

// FrameName is the file name of the depth raster written after step.
func FrameName(step int, format string) string {
	return fmt.Sprintf("depths_%08d.%s", step, format)
}

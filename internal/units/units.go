// Package units provides shared constants and conversions for depth and
// volume reporting. The simulation itself always works in metres and
// cubic metres.
package units

import "strings"

// Depth unit constants
const (
	M  = "m"
	CM = "cm"
	MM = "mm"
)

// Volume unit constants
const (
	M3     = "m3"
	Litres = "l"
)

// ValidDepthUnits contains all valid depth unit values
var ValidDepthUnits = []string{M, CM, MM}

// ValidVolumeUnits contains all valid volume unit values
var ValidVolumeUnits = []string{M3, Litres}

// IsValidDepth checks if the given unit is a known depth unit
func IsValidDepth(unit string) bool {
	return contains(ValidDepthUnits, unit)
}

// IsValidVolume checks if the given unit is a known volume unit
func IsValidVolume(unit string) bool {
	return contains(ValidVolumeUnits, unit)
}

// GetValidDepthUnitsString returns a comma-separated string of valid depth units for error messages
func GetValidDepthUnitsString() string {
	return strings.Join(ValidDepthUnits, ", ")
}

// GetValidVolumeUnitsString returns a comma-separated string of valid volume units for error messages
func GetValidVolumeUnitsString() string {
	return strings.Join(ValidVolumeUnits, ", ")
}

// ConvertDepth converts a depth in metres to the target unit.
// Unknown units fall back to metres.
func ConvertDepth(depthM float64, targetUnits string) float64 {
	switch targetUnits {
	case CM:
		return depthM * 100
	case MM:
		return depthM * 1000
	default:
		return depthM
	}
}

// ConvertVolume converts a volume in cubic metres to the target unit.
// Unknown units fall back to cubic metres.
func ConvertVolume(volumeM3 float64, targetUnits string) float64 {
	switch targetUnits {
	case Litres:
		return volumeM3 * 1000
	default:
		return volumeM3
	}
}

func contains(list []string, unit string) bool {
	for _, u := range list {
		if u == unit {
			return true
		}
	}
	return false
}

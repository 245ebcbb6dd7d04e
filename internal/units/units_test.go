package units

import "testing"

func TestIsValidDepth(t *testing.T) {
	for _, u := range []string{"m", "cm", "mm"} {
		if !IsValidDepth(u) {
			t.Errorf("IsValidDepth(%q) = false", u)
		}
	}
	for _, u := range []string{"", "km", "M", "l"} {
		if IsValidDepth(u) {
			t.Errorf("IsValidDepth(%q) = true", u)
		}
	}
}

func TestIsValidVolume(t *testing.T) {
	if !IsValidVolume(M3) || !IsValidVolume(Litres) {
		t.Fatal("known volume units rejected")
	}
	if IsValidVolume(MM) {
		t.Fatal("depth unit accepted as volume unit")
	}
}

func TestGetValidDepthUnitsString(t *testing.T) {
	if got := GetValidDepthUnitsString(); got != "m, cm, mm" {
		t.Fatalf("GetValidDepthUnitsString() = %q", got)
	}
}

func TestGetValidVolumeUnitsString(t *testing.T) {
	if got := GetValidVolumeUnitsString(); got != "m3, l" {
		t.Fatalf("GetValidVolumeUnitsString() = %q", got)
	}
}

func TestConvertDepth(t *testing.T) {
	cases := []struct {
		unit string
		want float64
	}{
		{M, 0.25},
		{CM, 25},
		{MM, 250},
		{"unknown", 0.25},
	}
	for _, tc := range cases {
		if got := ConvertDepth(0.25, tc.unit); got != tc.want {
			t.Errorf("ConvertDepth(0.25, %q) = %v, want %v", tc.unit, got, tc.want)
		}
	}
}

func TestConvertVolume(t *testing.T) {
	if got := ConvertVolume(1.5, Litres); got != 1500 {
		t.Fatalf("ConvertVolume(1.5, l) = %v, want 1500", got)
	}
	if got := ConvertVolume(1.5, M3); got != 1.5 {
		t.Fatalf("ConvertVolume(1.5, m3) = %v, want 1.5", got)
	}
}

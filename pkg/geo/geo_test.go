package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:   "same point",
			a:      Point{Lat: 40.7128, Lon: -74.0060},
			b:      Point{Lat: 40.7128, Lon: -74.0060},
			wantKm: 0, tolerance: 0.001,
		},
		{
			name:   "new york to los angeles",
			a:      Point{Lat: 40.7128, Lon: -74.0060},
			b:      Point{Lat: 34.0522, Lon: -118.2437},
			wantKm: 3936, tolerance: 20,
		},
		{
			name:   "short hop across manhattan",
			a:      Point{Lat: 40.7484, Lon: -73.9857},
			b:      Point{Lat: 40.7527, Lon: -73.9772},
			wantKm: 0.86, tolerance: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %v, want %v (±%v)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineMeters(t *testing.T) {
	// Two points roughly 111m apart (0.001 degrees of latitude).
	got := HaversineMeters(Point{Lat: 40.0, Lon: -74.0}, Point{Lat: 40.001, Lon: -74.0})
	if got < 100 || got > 120 {
		t.Errorf("HaversineMeters() = %v, want ~111", got)
	}
}

func TestInBox(t *testing.T) {
	nyc := Box{LatMin: 40.5, LatMax: 41.0, LonMin: -74.5, LonMax: -73.5}
	if !InBox(Point{Lat: 40.7, Lon: -74.0}, nyc) {
		t.Error("expected NYC point inside NYC box")
	}
	if InBox(Point{Lat: 34.0, Lon: -118.2}, nyc) {
		t.Error("expected LA point outside NYC box")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-5, 0, 100, 0},
		{150, 0, 100, 100},
		{42, 0, 100, 42},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

// Package geo provides coordinate math shared across location services.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius in kilometers.
	EarthRadiusKm = 6371.0

	// EarthRadiusMiles is the mean Earth radius in miles.
	EarthRadiusMiles = 3956.0
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Box is a latitude/longitude bounding box.
type Box struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b Point) float64 {
	return haversine(a, b) * EarthRadiusKm
}

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(a, b Point) float64 {
	return haversine(a, b) * EarthRadiusMiles
}

// HaversineMeters returns the great-circle distance between two points in meters.
func HaversineMeters(a, b Point) float64 {
	return HaversineKm(a, b) * 1000
}

func haversine(a, b Point) float64 {
	rlat1 := a.Lat * math.Pi / 180
	rlat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InBox reports whether a point falls inside the given bounding box.
func InBox(p Point, b Box) bool {
	return p.Lat >= b.LatMin && p.Lat <= b.LatMax && p.Lon >= b.LonMin && p.Lon <= b.LonMax
}

// Clamp bounds v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

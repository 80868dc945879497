package crime

import (
	"math"
	"math/rand"
	"testing"
)

func TestGeneratorEstimateMetro(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	incidents := gen.Estimate(40.7, -74.0, 30)

	if len(incidents) < 70 || len(incidents) > 120 {
		t.Errorf("metro count = %d, want 70-120", len(incidents))
	}

	validTypes := make(map[string]bool)
	for _, td := range typeDistribution {
		validTypes[td.name] = true
	}
	for _, inc := range incidents {
		if !validTypes[inc.Type] {
			t.Fatalf("unexpected incident type %q", inc.Type)
		}
		if inc.Time.IsZero() {
			t.Fatal("incident missing timestamp")
		}
		if math.Abs(inc.Lat-40.7) > 0.05 || math.Abs(inc.Lon+74.0) > 0.05 {
			t.Fatalf("incident jitter out of range: %v, %v", inc.Lat, inc.Lon)
		}
		if inc.Address == "" {
			t.Fatal("incident missing address")
		}
	}
}

func TestGeneratorEstimateSuburban(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	incidents := gen.Estimate(35.2, -90.0, 30)

	if len(incidents) < 35 || len(incidents) > 75 {
		t.Errorf("suburban count = %d, want 35-75", len(incidents))
	}
}

func TestGeneratorFromTotals(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)))

	incidents := gen.FromTotals(MonthlyTotals{
		Assault:      2,
		Burglary:     1,
		Larceny:      3,
		VehicleTheft: 1,
		Robbery:      1,
	}, 40.7, -74.0, 30)

	if len(incidents) != 8 {
		t.Fatalf("got %d incidents, want 8", len(incidents))
	}

	counts := make(map[string]int)
	for _, inc := range incidents {
		counts[inc.Type]++
	}
	if counts["Assault"] != 2 || counts["Burglary"] != 1 || counts["Larceny/Theft"] != 3 ||
		counts["Vehicle Theft"] != 1 || counts["Robbery"] != 1 {
		t.Errorf("type counts = %v", counts)
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(9))).Estimate(40.7, -74.0, 30)
	b := NewGenerator(rand.New(rand.NewSource(9))).Estimate(40.7, -74.0, 30)

	if len(a) != len(b) {
		t.Fatalf("seeded runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Address != b[i].Address {
			t.Fatalf("seeded runs diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

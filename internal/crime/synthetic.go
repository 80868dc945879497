package crime

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/movewise/movewise/pkg/geo"
)

// metroBoxes are coordinate boxes of major metros, which get higher
// synthetic incident counts.
var metroBoxes = []geo.Box{
	{LatMin: 40.5, LatMax: 41.0, LonMin: -74.5, LonMax: -73.5},   // New York
	{LatMin: 33.5, LatMax: 34.5, LonMin: -118.5, LonMax: -117.5}, // Los Angeles
	{LatMin: 41.5, LatMax: 42.5, LonMin: -88.0, LonMax: -87.0},   // Chicago
	{LatMin: 37.5, LatMax: 38.0, LonMin: -122.5, LonMax: -122.0}, // San Francisco
	{LatMin: 29.5, LatMax: 30.0, LonMin: -95.5, LonMax: -95.0},   // Houston
}

// Synthetic incident volume ranges.
const (
	metroCrimesMin    = 70
	metroCrimesMax    = 120
	suburbanCrimesMin = 35
	suburbanCrimesMax = 75
)

// typeDistribution weights synthetic incident types.
var typeDistribution = []struct {
	name   string
	weight float64
}{
	{"Theft", 0.30},
	{"Burglary", 0.20},
	{"Vehicle Theft", 0.15},
	{"Vandalism", 0.15},
	{"Assault", 0.10},
	{"Robbery", 0.05},
	{"Other", 0.05},
}

// hourWeights skew synthetic incidents toward evening hours.
var hourWeights = []int{
	3, 3, 2, 2, 2, 2, 3, 4, 3, 3, 3, 3,
	3, 3, 3, 4, 4, 5, 6, 7, 8, 7, 5, 4,
}

var (
	streetNames    = []string{"Main", "Oak", "Elm", "Maple", "Pine"}
	streetSuffixes = []string{"St", "Ave", "Dr", "Blvd"}
)

// MonthlyTotals holds per-offense incident counts for one month.
type MonthlyTotals struct {
	Assault      int
	Burglary     int
	Larceny      int
	VehicleTheft int
	Robbery      int
}

// Generator produces synthetic incidents, either as a pure location-based
// estimate or expanded from real aggregate totals.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewGenerator creates a generator. A nil source gets a time-seeded one.
func NewGenerator(source *rand.Rand) *Generator {
	if source == nil {
		source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rand: source, now: time.Now}
}

// Estimate fabricates a plausible incident set for a location with no
// real data source. Metro areas get more incidents than suburbs.
func (g *Generator) Estimate(lat, lon float64, days int) []Incident {
	point := geo.Point{Lat: lat, Lon: lon}
	isMetro := false
	for _, box := range metroBoxes {
		if geo.InBox(point, box) {
			isMetro = true
			break
		}
	}

	count := suburbanCrimesMin + g.rand.Intn(suburbanCrimesMax-suburbanCrimesMin+1)
	if isMetro {
		count = metroCrimesMin + g.rand.Intn(metroCrimesMax-metroCrimesMin+1)
	}

	incidents := make([]Incident, 0, count)
	for i := 0; i < count; i++ {
		name := g.pickType()
		incidents = append(incidents, g.incident(name, name+" reported", lat, lon, days))
	}
	return incidents
}

// FromTotals expands aggregate monthly offense counts into individual
// incidents so temporal analysis has something to work with.
func (g *Generator) FromTotals(t MonthlyTotals, lat, lon float64, days int) []Incident {
	type entry struct {
		name  string
		count int
	}
	entries := []entry{
		{"Assault", t.Assault},
		{"Burglary", t.Burglary},
		{"Larceny/Theft", t.Larceny},
		{"Vehicle Theft", t.VehicleTheft},
		{"Robbery", t.Robbery},
	}

	var incidents []Incident
	for _, e := range entries {
		for i := 0; i < e.count; i++ {
			incidents = append(incidents, g.incident(e.name, e.name, lat, lon, days))
		}
	}
	g.rand.Shuffle(len(incidents), func(i, j int) {
		incidents[i], incidents[j] = incidents[j], incidents[i]
	})
	return incidents
}

func (g *Generator) incident(name, description string, lat, lon float64, days int) Incident {
	day := g.rand.Intn(days + 1)
	when := g.now().AddDate(0, 0, -day)
	when = time.Date(when.Year(), when.Month(), when.Day(), g.pickHour(), g.rand.Intn(60), 0, 0, when.Location())

	return Incident{
		Type:        name,
		Time:        when,
		Address:     g.address(),
		Lat:         lat + g.jitter(),
		Lon:         lon + g.jitter(),
		Description: description,
	}
}

func (g *Generator) pickType() string {
	r := g.rand.Float64()
	cumulative := 0.0
	for _, t := range typeDistribution {
		cumulative += t.weight
		if r < cumulative {
			return t.name
		}
	}
	return typeDistribution[len(typeDistribution)-1].name
}

func (g *Generator) pickHour() int {
	total := 0
	for _, w := range hourWeights {
		total += w
	}
	r := g.rand.Intn(total)
	for hour, w := range hourWeights {
		r -= w
		if r < 0 {
			return hour
		}
	}
	return 23
}

func (g *Generator) address() string {
	return fmt.Sprintf("%d %s %s",
		100+g.rand.Intn(9900),
		streetNames[g.rand.Intn(len(streetNames))],
		streetSuffixes[g.rand.Intn(len(streetSuffixes))],
	)
}

func (g *Generator) jitter() float64 {
	return (g.rand.Float64() - 0.5) * 0.1
}

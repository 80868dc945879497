package amenity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movewise/movewise/pkg/geo"
)

// Provider performs a nearby search for one amenity type.
type Provider interface {
	NearbyPlaces(ctx context.Context, lat, lon float64, placeType string, radiusMeters int) ([]Place, error)
}

const (
	// defaultRadiusMeters is five miles.
	defaultRadiusMeters = 8047

	// sameLocationMeters is the distance under which two coordinates are
	// treated as the same point.
	sameLocationMeters = 100

	// fallbackLifestyleScore is used when no amenity data is available.
	fallbackLifestyleScore = 70
)

// essentialTypes are always queried regardless of hobbies.
var essentialTypes = []string{"grocery_or_supermarket", "pharmacy", "hospital"}

// hobbyTypes maps hobby keywords to amenity types.
var hobbyTypes = map[string]string{
	"gym":         "gym",
	"fitness":     "gym",
	"working out": "gym",
	"restaurants": "restaurant",
	"food":        "restaurant",
	"dining":      "restaurant",
	"cooking":     "grocery_or_supermarket",
	"reading":     "library",
	"books":       "library",
	"hiking":      "park",
	"running":     "park",
	"outdoors":    "park",
	"nature":      "park",
	"coffee":      "cafe",
	"cafes":       "cafe",
	"shopping":    "shopping_mall",
	"movies":      "movie_theater",
	"film":        "movie_theater",
	"nightlife":   "bar",
	"bars":        "bar",
	"drinks":      "bar",
	"banking":     "bank",
	"school":      "school",
	"education":   "school",
}

// ServiceConfig holds configuration for the amenity service.
type ServiceConfig struct {
	// Provider is the nearby-search data source.
	Provider Provider

	// RadiusMeters is the search radius (default: 8047, five miles).
	RadiusMeters int

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service summarizes and compares amenity access.
type Service struct {
	provider Provider
	radius   int
	logger   zerolog.Logger
}

// NewService creates a new amenity service.
func NewService(cfg ServiceConfig) *Service {
	radius := cfg.RadiusMeters
	if radius <= 0 {
		radius = defaultRadiusMeters
	}
	return &Service{
		provider: cfg.Provider,
		radius:   radius,
		logger:   cfg.Logger,
	}
}

// Summarize counts amenities of every relevant type around a coordinate
// and scores the result. Individual type lookups degrade to zero counts;
// only total provider failure yields the fallback summary.
func (s *Service) Summarize(ctx context.Context, lat, lon float64, hobbies []string) *Summary {
	types := RelevantTypes(hobbies)
	byType := make(map[string]int, len(types))

	center := geo.Point{Lat: lat, Lon: lon}
	total := 0
	distinct := 0
	distanceSum := 0.0
	placeCount := 0
	anySucceeded := false

	for _, placeType := range types {
		if s.provider == nil {
			byType[placeType] = 0
			continue
		}
		places, err := s.provider.NearbyPlaces(ctx, lat, lon, placeType, s.radius)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("type", placeType).
				Msg("nearby search failed")
			byType[placeType] = 0
			continue
		}
		anySucceeded = true
		byType[placeType] = len(places)
		total += len(places)
		if len(places) > 0 {
			distinct++
		}
		for _, p := range places {
			distanceSum += geo.HaversineMiles(center, geo.Point{Lat: p.Lat, Lon: p.Lon})
			placeCount++
		}
	}

	if !anySucceeded {
		return &Summary{
			ByType:         byType,
			LifestyleScore: fallbackLifestyleScore,
			DataSource:     "Estimate",
		}
	}

	avgDistance := 0.0
	if placeCount > 0 {
		avgDistance = round1(distanceSum / float64(placeCount))
	}

	return &Summary{
		ByType:               byType,
		TotalCount:           total,
		DistinctTypes:        distinct,
		AverageDistanceMiles: avgDistance,
		LifestyleScore:       LifestyleScore(total, distinct, avgDistance),
		DataSource:           "Google Places",
		IsRealData:           true,
	}
}

// Compare summarizes both locations and contrasts them. Coordinates
// within 100 meters of each other are treated as the same point and
// summarized once.
func (s *Service) Compare(ctx context.Context, currentLat, currentLon, destLat, destLon float64, hobbies []string) *Comparison {
	meters := geo.HaversineMeters(
		geo.Point{Lat: currentLat, Lon: currentLon},
		geo.Point{Lat: destLat, Lon: destLon},
	)
	if meters < sameLocationMeters {
		summary := s.Summarize(ctx, currentLat, currentLon, hobbies)
		return &Comparison{
			Current:        summary,
			Destination:    summary,
			SameLocation:   true,
			ComparisonText: "Both areas offer similar amenity access.",
		}
	}

	current := s.Summarize(ctx, currentLat, currentLon, hobbies)
	destination := s.Summarize(ctx, destLat, destLon, hobbies)

	return &Comparison{
		Current:         current,
		Destination:     destination,
		TotalDifference: destination.TotalCount - current.TotalCount,
		ScoreDifference: round1(destination.LifestyleScore - current.LifestyleScore),
		ComparisonText:  comparisonText(current, destination),
	}
}

// RelevantTypes resolves hobby keywords to amenity types and prepends
// the always-on essentials. The result is deduplicated and ordered.
func RelevantTypes(hobbies []string) []string {
	seen := make(map[string]bool, len(essentialTypes)+len(hobbies))
	types := make([]string, 0, len(essentialTypes)+len(hobbies))
	for _, t := range essentialTypes {
		seen[t] = true
		types = append(types, t)
	}

	var extras []string
	for _, hobby := range hobbies {
		t, ok := hobbyTypes[strings.ToLower(strings.TrimSpace(hobby))]
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		extras = append(extras, t)
	}
	sort.Strings(extras)
	return append(types, extras...)
}

// LifestyleScore rates amenity access 0-100 from quantity, variety, and
// average distance.
func LifestyleScore(total, distinctTypes int, avgDistanceMiles float64) float64 {
	quantity := math.Min(50, float64(total)*2)
	variety := math.Min(30, float64(distinctTypes)*3)
	proximity := math.Max(0, 20-avgDistanceMiles*2)
	return geo.Clamp(round1(quantity+variety+proximity), 0, 100)
}

func comparisonText(current, destination *Summary) string {
	switch {
	case destination.TotalCount > current.TotalCount:
		percent := 100.0
		if current.TotalCount > 0 {
			percent = float64(destination.TotalCount-current.TotalCount) / float64(current.TotalCount) * 100
		}
		text := fmt.Sprintf("The new area offers %.0f%% more amenities", percent)
		if improved := improvedTypes(current, destination); len(improved) > 0 {
			text += fmt.Sprintf(", particularly better options for %s.", strings.Join(improved, " and "))
		}
		return text
	case destination.TotalCount < current.TotalCount:
		percent := float64(current.TotalCount-destination.TotalCount) / float64(current.TotalCount) * 100
		return fmt.Sprintf("The new area has %.0f%% fewer amenities overall.", percent)
	default:
		return "Both areas offer similar amenity access."
	}
}

// improvedTypes lists up to three amenity types with higher counts at the
// destination.
func improvedTypes(current, destination *Summary) []string {
	var improved []string
	for placeType, count := range destination.ByType {
		if count > current.ByType[placeType] {
			improved = append(improved, placeType)
		}
	}
	sort.Strings(improved)
	if len(improved) > 3 {
		improved = improved[:3]
	}
	return improved
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

package noise

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// RoadProvider supplies road segments around a coordinate.
type RoadProvider interface {
	NearbyRoads(ctx context.Context, lat, lon, radiusMeters float64) ([]Road, error)
}

// PlaceProvider supplies counts of noise-generating places by type. It
// backs the secondary estimation path when road data is unavailable.
type PlaceProvider interface {
	NoiseSources(ctx context.Context, lat, lon float64) (map[string]int, error)
}

const (
	defaultRadiusMiles = 2.0
	metersPerMile      = 1609.34

	// quietFloorDB is the ambient level assumed when no roads are found.
	quietFloorDB = 45.0

	// placeBaseDB is the ambient floor for the place-based estimate.
	placeBaseDB = 35.0

	// placeContributionCap bounds how much nearby places can add.
	placeContributionCap = 50.0

	// placesPerTypeCap limits how many places of one type contribute.
	placesPerTypeCap = 3
)

// roadNoiseDB maps an OSM highway class to its base noise range midpoint.
var roadNoiseDB = map[string]float64{
	"motorway":     80, // 75-85
	"trunk":        75, // 70-80
	"primary":      70, // 65-75
	"secondary":    65, // 60-70
	"tertiary":     60, // 55-65
	"residential":  50, // 45-55
	"service":      45, // 40-50
	"unclassified": 50, // 45-55
}

const defaultRoadNoiseDB = 55 // 50-60

// roadGroups buckets highway classes for the breakdown.
var roadGroups = map[string]string{
	"motorway":  "highway",
	"trunk":     "highway",
	"primary":   "arterial",
	"secondary": "arterial",
	"tertiary":  "arterial",
}

const defaultRoadGroup = "residential"

// placeNoiseDB maps a place type to its characteristic noise level.
var placeNoiseDB = map[string]float64{
	"airport":       90,
	"night_club":    80,
	"highway":       75,
	"bar":           70,
	"train_station": 70,
	"bus_station":   65,
	"shopping_mall": 65,
	"restaurant":    60,
	"school":        60,
	"hospital":      55,
	"park":          40,
}

// preferenceScores assigns a 0-100 fit score per category and preference.
var preferenceScores = map[Category]map[Preference]float64{
	CategoryVeryQuiet: {PreferenceQuiet: 100, PreferenceModerate: 80, PreferenceLively: 40},
	CategoryQuiet:     {PreferenceQuiet: 95, PreferenceModerate: 85, PreferenceLively: 55},
	CategoryModerate:  {PreferenceQuiet: 60, PreferenceModerate: 100, PreferenceLively: 80},
	CategoryNoisy:     {PreferenceQuiet: 35, PreferenceModerate: 75, PreferenceLively: 100},
	CategoryVeryNoisy: {PreferenceQuiet: 20, PreferenceModerate: 40, PreferenceLively: 90},
}

// matchQuality describes the fit per category and preference. A quality
// of excellent or good counts as a good match.
var matchQuality = map[Category]map[Preference]string{
	CategoryVeryQuiet: {PreferenceQuiet: "excellent", PreferenceModerate: "fair", PreferenceLively: "poor"},
	CategoryQuiet:     {PreferenceQuiet: "excellent", PreferenceModerate: "good", PreferenceLively: "fair"},
	CategoryModerate:  {PreferenceQuiet: "fair", PreferenceModerate: "excellent", PreferenceLively: "good"},
	CategoryNoisy:     {PreferenceQuiet: "poor", PreferenceModerate: "good", PreferenceLively: "excellent"},
	CategoryVeryNoisy: {PreferenceQuiet: "poor", PreferenceModerate: "poor", PreferenceLively: "good"},
}

// ServiceConfig holds configuration for the noise service.
type ServiceConfig struct {
	// Roads is the primary road-based data source.
	Roads RoadProvider

	// Places is the secondary place-based source used when road data is
	// unavailable.
	Places PlaceProvider

	// RadiusMiles is the analysis radius (default: 2.0).
	RadiusMiles float64

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service analyzes and compares noise environments.
type Service struct {
	roads       RoadProvider
	places      PlaceProvider
	radiusMiles float64
	logger      zerolog.Logger
}

// NewService creates a new noise service.
func NewService(cfg ServiceConfig) *Service {
	radius := cfg.RadiusMiles
	if radius <= 0 {
		radius = defaultRadiusMiles
	}
	return &Service{
		roads:       cfg.Roads,
		places:      cfg.Places,
		radiusMiles: radius,
		logger:      cfg.Logger,
	}
}

// Analyze estimates the noise environment at a coordinate. Road data is
// preferred, place data is the secondary path, and a fixed moderate
// estimate covers total provider failure.
func (s *Service) Analyze(ctx context.Context, lat, lon float64, pref Preference) *Analysis {
	if s.roads != nil {
		roads, err := s.roads.NearbyRoads(ctx, lat, lon, s.radiusMiles*metersPerMile)
		if err == nil {
			return s.analyzeRoads(roads, pref)
		}
		s.logger.Warn().
			Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("road noise lookup failed")
	}

	if s.places != nil {
		sources, err := s.places.NoiseSources(ctx, lat, lon)
		if err == nil {
			return analyzePlaces(sources, pref)
		}
		s.logger.Warn().
			Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("place noise lookup failed")
	}

	return fallbackAnalysis(pref)
}

// Compare analyzes both locations and contrasts them against the user's
// noise preference.
func (s *Service) Compare(ctx context.Context, currentLat, currentLon, destLat, destLon float64, pref Preference) *Comparison {
	current := s.Analyze(ctx, currentLat, currentLon, pref)
	destination := s.Analyze(ctx, destLat, destLon, pref)

	dbDiff := round1(destination.EstimatedDB - current.EstimatedDB)
	match := EvaluateMatch(destination.Category, pref)

	return &Comparison{
		Current:           current,
		Destination:       destination,
		DBDifference:      dbDiff,
		ChangeDescription: describeDBChange(dbDiff),
		ScoreDifference:   round1(destination.Score - current.Score),
		IsQuieter:         dbDiff < 0,
		CategoryChange:    fmt.Sprintf("%s → %s", current.Category, destination.Category),
		PreferenceMatch:   match,
		Recommendation:    comparisonRecommendation(pref, match, dbDiff),
	}
}

func (s *Service) analyzeRoads(roads []Road, pref Preference) *Analysis {
	contributions := make([]Contribution, 0, len(roads))
	for _, road := range roads {
		base, ok := roadNoiseDB[road.Class]
		if !ok {
			base = defaultRoadNoiseDB
		}
		factor := distanceDecay(road.DistanceMiles)
		group, ok := roadGroups[road.Class]
		if !ok {
			group = defaultRoadGroup
		}
		contributions = append(contributions, Contribution{
			RoadName:       road.Name,
			RoadClass:      road.Class,
			Group:          group,
			BaseDB:         base,
			DistanceMiles:  road.DistanceMiles,
			DistanceFactor: factor,
			WeightedDB:     round1(base * factor),
		})
	}

	estimated := quietFloorDB
	breakdown := map[string]int{"highway": 0, "arterial": 0, "residential": 0}
	dominant := defaultRoadGroup
	impact := 0.0

	if len(contributions) > 0 {
		// Sound levels combine logarithmically, not linearly.
		linear := 0.0
		maxWeighted := math.Inf(-1)
		for _, c := range contributions {
			linear += math.Pow(10, c.WeightedDB/10)
			breakdown[c.Group]++
			impact += c.WeightedDB
			if c.WeightedDB > maxWeighted {
				maxWeighted = c.WeightedDB
				dominant = c.Group
			}
		}
		estimated = round1(10 * math.Log10(linear))
		impact = round1(impact / float64(len(contributions)))
	}

	category := Categorize(estimated)
	return &Analysis{
		EstimatedDB:     estimated,
		Category:        category,
		Score:           PreferenceScore(category, pref),
		RoadBreakdown:   breakdown,
		DominantSource:  dominant,
		TotalRoads:      len(roads),
		WeightedImpact:  impact,
		PreferenceMatch: EvaluateMatch(category, pref),
		DataSource:      "OpenStreetMap",
		IsRealData:      true,
	}
}

func analyzePlaces(sources map[string]int, pref Preference) *Analysis {
	contribution := 0.0
	for placeType, count := range sources {
		base, ok := placeNoiseDB[placeType]
		if !ok || count <= 0 {
			continue
		}
		if count > placesPerTypeCap {
			count = placesPerTypeCap
		}
		contribution += base * 0.1 * float64(count)
	}

	estimated := round1(placeBaseDB + math.Min(contribution, placeContributionCap))
	category := Categorize(estimated)
	return &Analysis{
		EstimatedDB:     estimated,
		Category:        category,
		Score:           PreferenceScore(category, pref),
		PreferenceMatch: EvaluateMatch(category, pref),
		DataSource:      "Google Places",
		IsRealData:      true,
	}
}

func fallbackAnalysis(pref Preference) *Analysis {
	return &Analysis{
		EstimatedDB:     50.0,
		Category:        CategoryModerate,
		Score:           70,
		PreferenceMatch: EvaluateMatch(CategoryModerate, pref),
		DataSource:      "Estimate",
		IsRealData:      false,
	}
}

// Categorize maps a decibel level to a noise category.
func Categorize(db float64) Category {
	switch {
	case db < 50:
		return CategoryVeryQuiet
	case db < 55:
		return CategoryQuiet
	case db < 65:
		return CategoryModerate
	case db < 75:
		return CategoryNoisy
	default:
		return CategoryVeryNoisy
	}
}

// PreferenceScore rates how well a noise category fits a preference.
func PreferenceScore(category Category, pref Preference) float64 {
	if row, ok := preferenceScores[category]; ok {
		if score, ok := row[pref]; ok {
			return score
		}
	}
	return preferenceScores[CategoryModerate][PreferenceModerate]
}

// EvaluateMatch rates the category/preference fit in qualitative terms.
func EvaluateMatch(category Category, pref Preference) Match {
	quality := "fair"
	if row, ok := matchQuality[category]; ok {
		if q, ok := row[pref]; ok {
			quality = q
		}
	}
	return Match{
		Quality:     quality,
		IsGoodMatch: quality == "excellent" || quality == "good",
	}
}

// distanceDecay flattens within 0.1 miles and falls off hyperbolically
// beyond it.
func distanceDecay(miles float64) float64 {
	if miles < 0.1 {
		return 1.0
	}
	return 1 / (1 + miles/0.1)
}

func describeDBChange(dbDiff float64) string {
	abs := math.Abs(dbDiff)
	quieter := dbDiff < 0
	switch {
	case abs < 3:
		return "Virtually identical"
	case abs < 6:
		if quieter {
			return "Slightly quieter"
		}
		return "Slightly louder"
	case abs < 10:
		if quieter {
			return "Noticeably quieter"
		}
		return "Noticeably louder"
	default:
		if quieter {
			return "Significantly quieter"
		}
		return "Significantly louder"
	}
}

func comparisonRecommendation(pref Preference, destMatch Match, dbDiff float64) string {
	if destMatch.IsGoodMatch {
		switch {
		case dbDiff < -5:
			return fmt.Sprintf("Excellent news! The new location is %.1f dB quieter and matches your '%s' preference perfectly.", math.Abs(dbDiff), pref)
		case dbDiff > 5:
			return fmt.Sprintf("The new location is %.1f dB louder, but still matches your '%s' preference well.", dbDiff, pref)
		default:
			return fmt.Sprintf("Similar noise levels with good match to your '%s' preference.", pref)
		}
	}
	return fmt.Sprintf("The new location may not match your '%s' preference. Consider visiting at different times of day.", pref)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Package noise estimates the noise environment around a location from
// road classifications and nearby noise-generating places.
package noise

import "errors"

// Common errors returned by noise providers.
var (
	// ErrProviderUnavailable indicates the upstream data source could not
	// be reached or returned a server error.
	ErrProviderUnavailable = errors.New("noise provider unavailable")

	// ErrMalformedResponse indicates the upstream returned a payload that
	// could not be interpreted.
	ErrMalformedResponse = errors.New("malformed noise provider response")
)

// Category describes a noise environment in human terms.
type Category string

// Noise categories ordered from quietest to loudest.
const (
	CategoryVeryQuiet Category = "Very Quiet"
	CategoryQuiet     Category = "Quiet"
	CategoryModerate  Category = "Moderate"
	CategoryNoisy     Category = "Noisy"
	CategoryVeryNoisy Category = "Very Noisy"
)

// Preference is a user's stated noise tolerance.
type Preference string

// Supported noise preferences.
const (
	PreferenceQuiet    Preference = "quiet"
	PreferenceModerate Preference = "moderate"
	PreferenceLively   Preference = "lively"
)

// ParsePreference normalizes a preference string, defaulting to moderate.
func ParsePreference(s string) Preference {
	switch Preference(s) {
	case PreferenceQuiet, PreferenceModerate, PreferenceLively:
		return Preference(s)
	default:
		return PreferenceModerate
	}
}

// Road is a single road segment near the analyzed location.
type Road struct {
	// Class is the OSM highway classification (motorway, primary, ...).
	Class string `json:"class"`

	// Name is the road name, if tagged.
	Name string `json:"name"`

	// DistanceMiles is the closest approach to the analyzed point.
	DistanceMiles float64 `json:"distance_miles"`
}

// Contribution is the modeled noise impact of one road.
type Contribution struct {
	RoadName       string  `json:"road_name"`
	RoadClass      string  `json:"road_class"`
	Group          string  `json:"group"`
	BaseDB         float64 `json:"base_db"`
	DistanceMiles  float64 `json:"distance_miles"`
	DistanceFactor float64 `json:"distance_factor"`
	WeightedDB     float64 `json:"weighted_db"`
}

// Match describes how well a noise category fits a user preference.
type Match struct {
	Quality     string `json:"quality"`
	IsGoodMatch bool   `json:"is_good_match"`
}

// Analysis is the noise picture for one location.
type Analysis struct {
	EstimatedDB     float64        `json:"estimated_db"`
	Category        Category       `json:"noise_category"`
	Score           float64        `json:"noise_score"`
	RoadBreakdown   map[string]int `json:"road_breakdown,omitempty"`
	DominantSource  string         `json:"dominant_source,omitempty"`
	TotalRoads      int            `json:"total_roads"`
	WeightedImpact  float64        `json:"weighted_impact"`
	PreferenceMatch Match          `json:"preference_match"`
	DataSource      string         `json:"data_source"`
	IsRealData      bool           `json:"is_real_data"`
}

// Comparison contrasts the noise environments of two locations.
type Comparison struct {
	Current           *Analysis `json:"current"`
	Destination       *Analysis `json:"destination"`
	DBDifference      float64   `json:"db_difference"`
	ChangeDescription string    `json:"db_change_description"`
	ScoreDifference   float64   `json:"score_difference"`
	IsQuieter         bool      `json:"is_quieter"`
	CategoryChange    string    `json:"category_change"`
	PreferenceMatch   Match     `json:"preference_match"`
	Recommendation    string    `json:"recommendation"`
}

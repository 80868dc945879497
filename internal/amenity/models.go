// Package amenity counts and scores nearby amenities against a user's
// lifestyle interests.
package amenity

import "errors"

// Common errors returned by amenity providers.
var (
	// ErrProviderUnavailable indicates the upstream data source could not
	// be reached or returned a server error.
	ErrProviderUnavailable = errors.New("amenity provider unavailable")

	// ErrMalformedResponse indicates the upstream returned a payload that
	// could not be interpreted.
	ErrMalformedResponse = errors.New("malformed amenity provider response")
)

// Place is a single amenity returned by a provider.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Summary is the amenity picture for one location.
type Summary struct {
	// ByType holds the number of places found per amenity type.
	ByType map[string]int `json:"by_type"`

	// TotalCount is the sum of all per-type counts.
	TotalCount int `json:"total_count"`

	// DistinctTypes is the number of amenity types with at least one hit.
	DistinctTypes int `json:"distinct_types"`

	// AverageDistanceMiles is the mean distance to every place found.
	AverageDistanceMiles float64 `json:"average_distance"`

	// LifestyleScore rates the location 0-100 for amenity access.
	LifestyleScore float64 `json:"lifestyle_score"`

	DataSource string `json:"data_source"`
	IsRealData bool   `json:"is_real_data"`
}

// Comparison contrasts amenity access between two locations.
type Comparison struct {
	Current     *Summary `json:"current"`
	Destination *Summary `json:"destination"`

	// SameLocation is set when the two coordinates are effectively the
	// same point and a single summary serves both sides.
	SameLocation bool `json:"same_location"`

	TotalDifference int     `json:"total_difference"`
	ScoreDifference float64 `json:"score_difference"`
	ComparisonText  string  `json:"comparison_text"`
}

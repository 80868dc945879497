// Package analysis orchestrates the full relocation comparison: geocoding,
// the five domain pipelines, weighted scoring, narrative insights, and
// persistence of the finished result.
package analysis

import (
	"errors"
	"time"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/commute"
	"github.com/movewise/movewise/internal/cost"
	"github.com/movewise/movewise/internal/crime"
	"github.com/movewise/movewise/internal/insights"
	"github.com/movewise/movewise/internal/noise"
	"github.com/movewise/movewise/internal/scoring"
	"github.com/movewise/movewise/pkg/geo"
)

// Service errors.
var (
	// ErrGeocoding indicates one of the request addresses could not be
	// resolved. This is a client input problem, not an upstream outage.
	ErrGeocoding = errors.New("could not geocode address")

	// ErrPersistence indicates the computed analysis could not be saved.
	ErrPersistence = errors.New("could not persist analysis")

	// ErrNotFound indicates no analysis with the given id belongs to the
	// requesting user.
	ErrNotFound = errors.New("analysis not found")
)

// Request describes the two locations to compare.
type Request struct {
	CurrentAddress     string `json:"current_address"`
	DestinationAddress string `json:"destination_address"`
}

// Result is the complete comparison payload returned to the caller and
// stored as the analysis record body.
type Result struct {
	ID                 string    `json:"id"`
	CurrentAddress     string    `json:"current_address"`
	DestinationAddress string    `json:"destination_address"`
	CurrentPoint       geo.Point `json:"current_point"`
	DestinationPoint   geo.Point `json:"destination_point"`

	Crime     *crime.Comparison   `json:"crime_data"`
	Noise     *noise.Comparison   `json:"noise_data"`
	Cost      *cost.Comparison    `json:"cost_data"`
	Amenities *amenity.Comparison `json:"amenities_data"`
	Commute   *commute.Info       `json:"commute_data"`

	Scores *scoring.Composite               `json:"scores"`
	Deltas map[scoring.Domain]scoring.Delta `json:"score_deltas"`

	Insights *insights.Insights `json:"insights"`

	CreatedAt time.Time `json:"created_at"`
}

// Record is the persisted form of an analysis: indexed component scores
// plus the full result payload as JSON.
type Record struct {
	ID     string
	UserID string

	CurrentAddress     string
	DestinationAddress string

	SafetyScore        float64
	AffordabilityScore float64
	EnvironmentScore   float64
	LifestyleScore     float64
	ConvenienceScore   float64
	OverallScore       float64
	Grade              string

	Payload []byte

	CreatedAt time.Time
}

// Summary is the list-view projection of a stored analysis.
type Summary struct {
	ID                 string    `json:"id"`
	CurrentAddress     string    `json:"current_address"`
	DestinationAddress string    `json:"destination_address"`
	OverallScore       float64   `json:"overall_score"`
	Grade              string    `json:"grade"`
	CreatedAt          time.Time `json:"created_at"`
}

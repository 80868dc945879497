// Package commute estimates work commutes and converts them to a
// convenience score.
package commute

import "errors"

// Provider errors.
var (
	ErrProviderUnavailable = errors.New("commute provider unavailable")
	ErrNoRoute             = errors.New("no route between origin and work address")
)

// Mode is a travel mode supported by the distance matrix provider.
type Mode string

const (
	ModeDriving   Mode = "driving"
	ModeTransit   Mode = "transit"
	ModeBicycling Mode = "bicycling"
	ModeWalking   Mode = "walking"
)

// ParseMode maps free-form preference strings to a Mode, defaulting to driving.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeTransit, ModeBicycling, ModeWalking:
		return Mode(s)
	default:
		return ModeDriving
	}
}

// Info is a single commute estimate from a location to a work address.
type Info struct {
	// DurationMinutes is nil when no estimate is available.
	DurationMinutes *int   `json:"duration_minutes"`
	Mode            Mode   `json:"method"`
	Distance        string `json:"distance,omitempty"`
	Description     string `json:"description"`
	IsRealData      bool   `json:"is_real_data"`
}

// Package profile manages user preference profiles: schedules, noise
// tolerance, hobbies, and housing needs that personalize an analysis.
package profile

import "time"

// Default preference values applied when a user has no stored profile or
// leaves a field empty.
const (
	DefaultWorkHours       = "9:00 - 17:00"
	DefaultSleepHours      = "23:00 - 07:00"
	DefaultNoisePreference = "moderate"
	DefaultCommuteMode     = "driving"
	DefaultBedrooms        = 2
)

// Profile holds a user's relocation preferences.
type Profile struct {
	// UserID owns the profile.
	UserID string

	// WorkHours is a display-style range like "9:00 - 17:00".
	WorkHours string

	// WorkAddress is the commute destination. Empty means no commute
	// estimate is requested.
	WorkAddress string

	// CommuteMode is the preferred travel mode (driving, transit,
	// bicycling, walking).
	CommuteMode string

	// SleepHours is a range like "23:00 - 07:00".
	SleepHours string

	// NoisePreference is quiet, moderate, or lively.
	NoisePreference string

	// Hobbies are free-form interests like "gym" or "hiking".
	Hobbies []string

	// Bedrooms sizes the rent estimate (0 = studio).
	Bedrooms int

	// CreatedAt is when the profile was created.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time
}

// DefaultProfile returns a profile with default preferences.
func DefaultProfile(userID string) *Profile {
	now := time.Now()
	return &Profile{
		UserID:          userID,
		WorkHours:       DefaultWorkHours,
		CommuteMode:     DefaultCommuteMode,
		SleepHours:      DefaultSleepHours,
		NoisePreference: DefaultNoisePreference,
		Hobbies:         []string{},
		Bedrooms:        DefaultBedrooms,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Normalize fills empty fields with defaults so downstream consumers
// never see blank schedules or modes.
func (p *Profile) Normalize() {
	if p.WorkHours == "" {
		p.WorkHours = DefaultWorkHours
	}
	if p.SleepHours == "" {
		p.SleepHours = DefaultSleepHours
	}
	if p.NoisePreference == "" {
		p.NoisePreference = DefaultNoisePreference
	}
	if p.CommuteMode == "" {
		p.CommuteMode = DefaultCommuteMode
	}
	if p.Hobbies == nil {
		p.Hobbies = []string{}
	}
	if p.Bedrooms < 0 {
		p.Bedrooms = DefaultBedrooms
	}
}

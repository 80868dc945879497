package models

import "time"

// ProfileInput is the PUT /v1/me/profile request body. Nil fields are
// left unchanged; a nil hobbies list keeps the stored one.
type ProfileInput struct {
	WorkHours       *string  `json:"work_hours"`
	WorkAddress     *string  `json:"work_address"`
	CommuteMode     *string  `json:"commute_mode"`
	SleepHours      *string  `json:"sleep_hours"`
	NoisePreference *string  `json:"noise_preference"`
	Hobbies         []string `json:"hobbies"`
	Bedrooms        *int     `json:"bedrooms"`
}

// ProfileResponse is the wire representation of a user's preference
// profile.
type ProfileResponse struct {
	WorkHours       string    `json:"work_hours"`
	WorkAddress     string    `json:"work_address"`
	CommuteMode     string    `json:"commute_mode"`
	SleepHours      string    `json:"sleep_hours"`
	NoisePreference string    `json:"noise_preference"`
	Hobbies         []string  `json:"hobbies"`
	Bedrooms        int       `json:"bedrooms"`
	UpdatedAt       time.Time `json:"updated_at"`
}

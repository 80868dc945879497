// Package crime analyzes recent crime incidents around a location and
// scores safety against a user's daily schedule.
package crime

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Common errors returned by crime providers.
var (
	// ErrProviderUnavailable indicates the upstream data source could not
	// be reached or returned a server error.
	ErrProviderUnavailable = errors.New("crime provider unavailable")

	// ErrMalformedResponse indicates the upstream returned a payload that
	// could not be interpreted.
	ErrMalformedResponse = errors.New("malformed crime provider response")

	// ErrNoAgency indicates no reporting agency covers the coordinate.
	ErrNoAgency = errors.New("no reporting agency for location")
)

// Category buckets incidents by severity class.
type Category string

// Incident categories, matched in priority order.
const (
	CategoryViolent   Category = "violent"
	CategoryProperty  Category = "property"
	CategoryTheft     Category = "theft"
	CategoryVandalism Category = "vandalism"
	CategoryOther     Category = "other"
)

// Categories lists all incident categories.
var Categories = []Category{
	CategoryViolent,
	CategoryProperty,
	CategoryTheft,
	CategoryVandalism,
	CategoryOther,
}

// Incident is a single reported crime.
type Incident struct {
	Type        string    `json:"type"`
	Time        time.Time `json:"time"`
	Address     string    `json:"address"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Description string    `json:"description"`
}

// IncidentSet is a provider's answer for one location.
type IncidentSet struct {
	Incidents []Incident
	Source    string
}

// Schedule holds the user's daily hour ranges. End hours are exclusive;
// ranges may wrap past midnight.
type Schedule struct {
	WorkStart  int
	WorkEnd    int
	SleepStart int
	SleepEnd   int
}

// Default schedule hours used when parsing fails.
const (
	defaultWorkStart  = 9
	defaultWorkEnd    = 17
	defaultSleepStart = 23
	defaultSleepEnd   = 7
)

// ParseSchedule builds a Schedule from hour ranges like "9:00 - 17:00".
// Malformed ranges fall back to a 9-17 work day and a 23-7 night.
func ParseSchedule(workHours, sleepHours string) Schedule {
	ws, we := parseHourRange(workHours, defaultWorkStart, defaultWorkEnd)
	ss, se := parseHourRange(sleepHours, defaultSleepStart, defaultSleepEnd)
	return Schedule{WorkStart: ws, WorkEnd: we, SleepStart: ss, SleepEnd: se}
}

func parseHourRange(s string, defStart, defEnd int) (int, int) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return defStart, defEnd
	}
	start, err := parseHour(parts[0])
	if err != nil {
		return defStart, defEnd
	}
	end, err := parseHour(parts[1])
	if err != nil {
		return defStart, defEnd
	}
	return start, end
}

func parseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 {
		return 0, errors.New("hour out of range")
	}
	return h, nil
}

// Contains reports whether an hour falls inside [start, end), handling
// overnight wraps like 23-7.
func hourInRange(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// TemporalAnalysis describes when incidents happen relative to the
// user's schedule.
type TemporalAnalysis struct {
	HourlyDistribution [24]int `json:"hourly_distribution"`
	PeakHours          []int   `json:"peak_hours"`
	DuringWork         int     `json:"crimes_during_work_hours"`
	DuringSleep        int     `json:"crimes_during_sleep_hours"`
	DuringCommute      int     `json:"crimes_during_commute"`
	WorkPercent        float64 `json:"work_hours_percentage"`
	SleepPercent       float64 `json:"sleep_hours_percentage"`
	CommutePercent     float64 `json:"commute_percentage"`
}

// Trend describes how incident volume moved across the lookback window.
type Trend struct {
	Direction       string  `json:"direction"`
	ChangePercent   float64 `json:"change_percent"`
	FirstHalfCount  int     `json:"first_half_count"`
	SecondHalfCount int     `json:"second_half_count"`
}

// Report is the crime picture for one location.
type Report struct {
	TotalCrimes  int              `json:"total_crimes"`
	DailyAverage float64          `json:"daily_average"`
	Categories   map[Category]int `json:"categories"`
	Temporal     TemporalAnalysis `json:"temporal_analysis"`
	Trend        Trend            `json:"trend"`
	SafetyScore  float64          `json:"safety_score"`
	Incidents    []Incident       `json:"incidents"`
	DataSource   string           `json:"data_source"`
	IsRealData   bool             `json:"is_real_data"`
}

// Comparison contrasts crime between two locations.
type Comparison struct {
	Current            *Report `json:"current"`
	Destination        *Report `json:"destination"`
	CrimeDifference    int     `json:"crime_difference"`
	CrimeChangePercent float64 `json:"crime_change_percent"`
	ScoreDifference    float64 `json:"score_difference"`
	IsSafer            bool    `json:"is_safer"`
	Recommendation     string  `json:"recommendation"`
}

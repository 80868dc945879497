package crime

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Provider supplies recent incidents around a coordinate.
type Provider interface {
	Incidents(ctx context.Context, lat, lon float64, days int) (*IncidentSet, error)
}

const (
	// lookbackDays is the reporting window.
	lookbackDays = 30

	// incidentListCap limits how many raw incidents a report carries.
	incidentListCap = 50

	// peakHourFraction marks hours at or above this share of the busiest
	// hour as peaks.
	peakHourFraction = 0.7

	// trendBand is the percent change within which a trend reads stable.
	trendBand = 10.0

	// sleepCalloutPercent triggers the sleep-hours warning in comparison
	// recommendations.
	sleepCalloutPercent = 15.0
)

// categoryKeywords are matched in order against an incident's type and
// description. First category to match wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryViolent, []string{"assault", "robbery", "shooting", "homicide", "murder", "attack"}},
	{CategoryProperty, []string{"burglary", "breaking", "trespassing"}},
	{CategoryTheft, []string{"theft", "larceny", "stolen", "shoplifting", "vehicle theft"}},
	{CategoryVandalism, []string{"vandalism", "graffiti", "damage"}},
}

// ServiceConfig holds configuration for the crime service.
type ServiceConfig struct {
	// Provider is the incident data source. When nil or failing, a
	// location-based synthetic estimate is used.
	Provider Provider

	// Generator produces synthetic fallback incidents. Defaults to a
	// time-seeded generator.
	Generator *Generator

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service analyzes and compares crime around locations.
type Service struct {
	provider Provider
	gen      *Generator
	logger   zerolog.Logger
}

// NewService creates a new crime service.
func NewService(cfg ServiceConfig) *Service {
	gen := cfg.Generator
	if gen == nil {
		gen = NewGenerator(nil)
	}
	return &Service{
		provider: cfg.Provider,
		gen:      gen,
		logger:   cfg.Logger,
	}
}

// Analyze builds the crime report for one location. Provider failure
// degrades to a synthetic estimate.
func (s *Service) Analyze(ctx context.Context, lat, lon float64, schedule Schedule) *Report {
	var (
		incidents []Incident
		source    = "Location-based estimates"
		isReal    = false
	)

	if s.provider != nil {
		set, err := s.provider.Incidents(ctx, lat, lon, lookbackDays)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Float64("lat", lat).
				Float64("lon", lon).
				Msg("incident lookup failed, using estimates")
		} else {
			incidents = set.Incidents
			source = set.Source
			isReal = true
		}
	}
	if !isReal {
		incidents = s.gen.Estimate(lat, lon, lookbackDays)
	}

	return buildReport(incidents, schedule, source, isReal)
}

// Compare analyzes both locations and contrasts them.
func (s *Service) Compare(ctx context.Context, currentLat, currentLon, destLat, destLon float64, schedule Schedule) *Comparison {
	current := s.Analyze(ctx, currentLat, currentLon, schedule)
	destination := s.Analyze(ctx, destLat, destLon, schedule)

	scoreDiff := round1(destination.SafetyScore - current.SafetyScore)
	return &Comparison{
		Current:            current,
		Destination:        destination,
		CrimeDifference:    destination.TotalCrimes - current.TotalCrimes,
		CrimeChangePercent: percentChange(current.TotalCrimes, destination.TotalCrimes),
		ScoreDifference:    scoreDiff,
		IsSafer:            destination.SafetyScore > current.SafetyScore,
		Recommendation:     safetyRecommendation(current, destination, scoreDiff),
	}
}

func buildReport(incidents []Incident, schedule Schedule, source string, isReal bool) *Report {
	categories := CategorizeIncidents(incidents)
	temporal := AnalyzeTemporal(incidents, schedule)

	listed := incidents
	if len(listed) > incidentListCap {
		listed = listed[:incidentListCap]
	}

	return &Report{
		TotalCrimes:  len(incidents),
		DailyAverage: round2(float64(len(incidents)) / lookbackDays),
		Categories:   categories,
		Temporal:     temporal,
		Trend:        CalculateTrend(incidents),
		SafetyScore:  SafetyScore(len(incidents), categories[CategoryViolent], temporal.SleepPercent),
		Incidents:    listed,
		DataSource:   source,
		IsRealData:   isReal,
	}
}

// CategorizeIncidents buckets incidents by keyword, first match wins.
func CategorizeIncidents(incidents []Incident) map[Category]int {
	categories := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		categories[c] = 0
	}
	for _, inc := range incidents {
		categories[Categorize(inc)]++
	}
	return categories
}

// Categorize classifies one incident from its type and description.
func Categorize(inc Incident) Category {
	text := strings.ToLower(inc.Type) + " " + strings.ToLower(inc.Description)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(text, kw) {
				return ck.category
			}
		}
	}
	return CategoryOther
}

// AnalyzeTemporal maps incidents onto the hourly clock and the user's
// schedule. Commute hours are the hour before and after each end of the
// work day.
func AnalyzeTemporal(incidents []Incident, schedule Schedule) TemporalAnalysis {
	var t TemporalAnalysis

	commuteHours := map[int]bool{
		wrapHour(schedule.WorkStart - 1): true,
		schedule.WorkStart:               true,
		schedule.WorkEnd:                 true,
		wrapHour(schedule.WorkEnd + 1):   true,
	}

	counted := 0
	for _, inc := range incidents {
		if inc.Time.IsZero() {
			continue
		}
		counted++
		hour := inc.Time.Hour()
		t.HourlyDistribution[hour]++

		if hourInRange(hour, schedule.WorkStart, schedule.WorkEnd) {
			t.DuringWork++
		}
		if hourInRange(hour, schedule.SleepStart, schedule.SleepEnd) {
			t.DuringSleep++
		}
		if commuteHours[hour] {
			t.DuringCommute++
		}
	}

	t.PeakHours = peakHours(t.HourlyDistribution)
	if total := len(incidents); total > 0 {
		t.WorkPercent = round1(float64(t.DuringWork) / float64(total) * 100)
		t.SleepPercent = round1(float64(t.DuringSleep) / float64(total) * 100)
		t.CommutePercent = round1(float64(t.DuringCommute) / float64(total) * 100)
	}
	return t
}

func wrapHour(h int) int {
	return ((h % 24) + 24) % 24
}

func peakHours(dist [24]int) []int {
	maxCount := 0
	for _, c := range dist {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return nil
	}
	threshold := float64(maxCount) * peakHourFraction
	var peaks []int
	for hour, count := range dist {
		if float64(count) >= threshold {
			peaks = append(peaks, hour)
		}
	}
	return peaks
}

// CalculateTrend splits the window's incidents in half chronologically
// and compares the halves.
func CalculateTrend(incidents []Incident) Trend {
	timed := make([]Incident, 0, len(incidents))
	for _, inc := range incidents {
		if !inc.Time.IsZero() {
			timed = append(timed, inc)
		}
	}
	if len(timed) < 2 {
		return Trend{Direction: "stable"}
	}

	sort.Slice(timed, func(i, j int) bool { return timed[i].Time.Before(timed[j].Time) })

	mid := len(timed) / 2
	first := mid
	second := len(timed) - mid

	change := float64(second-first) / float64(first) * 100
	direction := "stable"
	switch {
	case change > trendBand:
		direction = "increasing"
	case change < -trendBand:
		direction = "decreasing"
	}

	return Trend{
		Direction:       direction,
		ChangePercent:   round1(change),
		FirstHalfCount:  first,
		SecondHalfCount: second,
	}
}

// SafetyScore rates a location 0-100, higher meaning safer, from incident
// volume, the violent share, and overlap with sleep hours.
func SafetyScore(total, violent int, sleepPercent float64) float64 {
	base := math.Max(0, 50-float64(total)/10)

	violentRatio := float64(violent) / math.Max(float64(total), 1)
	violentPenalty := violentRatio * 25

	sleepSafety := math.Max(0, 25-sleepPercent/4)

	score := base - violentPenalty + sleepSafety
	return round1(math.Max(0, math.Min(100, score)))
}

func percentChange(before, after int) float64 {
	if before == 0 {
		if after > 0 {
			return 100
		}
		return 0
	}
	return round1(float64(after-before) / float64(before) * 100)
}

func safetyRecommendation(current, destination *Report, scoreDiff float64) string {
	cur := current.SafetyScore
	dst := destination.SafetyScore

	switch {
	case scoreDiff > 10:
		return fmt.Sprintf("The new location is significantly safer (safety score: %v vs %v). Crime rates are lower, especially during your sleep hours.", dst, cur)
	case scoreDiff > 0:
		return fmt.Sprintf("The new location is slightly safer (safety score: %v vs %v). Overall crime rates are comparable with minor improvements.", dst, cur)
	case scoreDiff > -10:
		return fmt.Sprintf("Safety levels are similar (safety score: %v vs %v). Consider specific crime patterns during your active hours.", dst, cur)
	default:
		if destination.Temporal.SleepPercent > sleepCalloutPercent {
			return fmt.Sprintf("The new location has higher crime rates (safety score: %v vs %v). Notable: %v%% of crimes occur during your sleep hours. Consider additional security measures.", dst, cur, destination.Temporal.SleepPercent)
		}
		return fmt.Sprintf("The new location has higher crime rates (safety score: %v vs %v). Review the temporal patterns and consider your daily routine.", dst, cur)
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

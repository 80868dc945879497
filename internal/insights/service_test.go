package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/commute"
	"github.com/movewise/movewise/internal/cost"
	"github.com/movewise/movewise/internal/crime"
	"github.com/movewise/movewise/internal/noise"
	"github.com/movewise/movewise/internal/scoring"
)

type stubChat struct {
	response string
	err      error
	gotUser  string
}

func (s *stubChat) Complete(_ context.Context, _ string, user string) (string, error) {
	s.gotUser = user
	return s.response, s.err
}

func TestGenerate(t *testing.T) {
	chat := &stubChat{response: "---OVERVIEW---\nA good move overall.\n---INSIGHTS---\nDetails here."}
	svc := NewService(ServiceConfig{Provider: chat, Logger: zerolog.Nop()})

	got := svc.Generate(context.Background(), promptFixture())
	if got.OverviewSummary != "A good move overall." {
		t.Errorf("OverviewSummary = %q", got.OverviewSummary)
	}
	if chat.gotUser == "" {
		t.Fatal("provider never received a prompt")
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	chat := &stubChat{err: ErrProviderUnavailable}
	svc := NewService(ServiceConfig{Provider: chat, Logger: zerolog.Nop()})

	got := svc.Generate(context.Background(), promptFixture())
	want := Placeholder()
	if got.OverviewSummary != want.OverviewSummary {
		t.Errorf("OverviewSummary = %q, want placeholder", got.OverviewSummary)
	}
}

func TestGenerateNilProvider(t *testing.T) {
	svc := NewService(ServiceConfig{Logger: zerolog.Nop()})

	got := svc.Generate(context.Background(), promptFixture())
	if got.OverviewSummary != Placeholder().OverviewSummary {
		t.Errorf("OverviewSummary = %q, want placeholder", got.OverviewSummary)
	}
}

func TestBuildPromptIncludesAllSections(t *testing.T) {
	prompt := BuildPrompt(promptFixture())

	for _, want := range []string{
		"moving from 123 Current St to 456 New Ave",
		"REAL CRIME DATA",
		"Total Crimes: 42 crimes in 30 days",
		"REAL NOISE DATA",
		"Estimated Noise: 58.0 dB",
		"Noise Score: 85/100",
		"Noise Score: 80/100",
		"Match Quality: good",
		"REAL COST DATA",
		"Total Monthly: $3100.00",
		"AMENITIES & LIFESTYLE",
		"Total Count: 25",
		"• Gym: 4",
		"COMMUTE INFORMATION",
		"Duration: 25 minutes",
		"Method: Driving",
		"USER PREFERENCES & SCHEDULE",
		"Work Schedule: 9:00 - 17:00",
		"OVERALL SCORES",
		"Grade: B",
		"Safety: 70.0/100 (30% weight)",
		"INSTRUCTIONS",
		"---OVERVIEW---",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptSkipsMissingSections(t *testing.T) {
	prompt := BuildPrompt(&PromptData{
		CurrentAddress:     "a",
		DestinationAddress: "b",
	})

	for _, absent := range []string{"REAL CRIME DATA", "REAL NOISE DATA", "REAL COST DATA", "OVERALL SCORES"} {
		if strings.Contains(prompt, absent) {
			t.Errorf("prompt should not contain %q", absent)
		}
	}
	if !strings.Contains(prompt, "INSTRUCTIONS") {
		t.Error("instructions section always present")
	}
}

func promptFixture() *PromptData {
	duration := 25
	return &PromptData{
		CurrentAddress:     "123 Current St",
		DestinationAddress: "456 New Ave",
		Crime: &crime.Comparison{
			Current: &crime.Report{
				TotalCrimes:  42,
				DailyAverage: 1.4,
				SafetyScore:  62.5,
				Categories:   map[crime.Category]int{crime.CategoryTheft: 30, crime.CategoryViolent: 5},
				Trend:        crime.Trend{Direction: "stable"},
			},
			Destination: &crime.Report{
				TotalCrimes:  20,
				DailyAverage: 0.67,
				SafetyScore:  74.0,
				Categories:   map[crime.Category]int{crime.CategoryTheft: 15},
				Trend:        crime.Trend{Direction: "decreasing", ChangePercent: -12},
			},
			CrimeDifference: -22,
			ScoreDifference: 11.5,
			Recommendation:  "The new area appears significantly safer.",
		},
		Noise: &noise.Comparison{
			Current: &noise.Analysis{
				EstimatedDB: 58.0, Category: noise.CategoryModerate, Score: 85,
				RoadBreakdown: map[string]int{"arterial": 2, "residential": 5},
				TotalRoads:    7, DominantSource: "arterial",
			},
			Destination: &noise.Analysis{
				EstimatedDB: 51.0, Category: noise.CategoryQuiet, Score: 80,
				RoadBreakdown: map[string]int{"residential": 3},
				TotalRoads:    3, DominantSource: "residential",
			},
			DBDifference:      -7.0,
			ChangeDescription: "Noticeably quieter",
			PreferenceMatch:   noise.Match{Quality: "good", IsGoodMatch: true},
			Recommendation:    "Good fit for your preference.",
		},
		Cost: &cost.Comparison{
			Current: &cost.Estimate{
				TotalMonthly: 3100, TotalAnnual: 37200, AffordabilityScore: 45,
				Housing:  cost.Housing{MonthlyRent: 1800},
				Expenses: map[cost.Category]float64{cost.CategoryUtilities: 270},
			},
			Destination: &cost.Estimate{
				TotalMonthly: 2600, TotalAnnual: 31200, AffordabilityScore: 62,
				Housing:  cost.Housing{MonthlyRent: 1500},
				Expenses: map[cost.Category]float64{cost.CategoryUtilities: 225},
			},
			MonthlyDifference: -500,
			AnnualDifference:  -6000,
			PercentChange:     -16.1,
			HousingDifference: -300,
			Recommendation:    "Meaningfully cheaper month to month.",
		},
		Amenities: &amenity.Comparison{
			Destination: &amenity.Summary{
				ByType:               map[string]int{"gym": 4, "pharmacy": 3, "hospital": 1},
				TotalCount:           25,
				AverageDistanceMiles: 1.2,
			},
		},
		Commute: &commute.Info{
			DurationMinutes: &duration,
			Mode:            commute.ModeDriving,
			Distance:        "12.0 mi",
		},
		Preferences: &Preferences{
			WorkHours:       "9:00 - 17:00",
			SleepHours:      "23:00 - 07:00",
			NoisePreference: "quiet",
			Hobbies:         []string{"gym", "hiking"},
		},
		Scores: &scoring.Composite{
			OverallScore: 72.4,
			Grade:        "B",
			Components: map[scoring.Domain]scoring.ComponentScore{
				scoring.DomainSafety:        {Score: 70, Weight: 0.30},
				scoring.DomainAffordability: {Score: 62, Weight: 0.25},
				scoring.DomainEnvironment:   {Score: 80, Weight: 0.20},
				scoring.DomainLifestyle:     {Score: 75, Weight: 0.15},
				scoring.DomainConvenience:   {Score: 72, Weight: 0.10},
			},
			Strengths: []string{"environment", "lifestyle"},
		},
	}
}

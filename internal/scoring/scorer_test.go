package scoring

import (
	"math"
	"strings"
	"testing"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, d := range Domains {
		sum += Weights[d]
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
}

func TestScoreWeightedAverage(t *testing.T) {
	in := Inputs{
		Safety:        62.5,
		Affordability: 80,
		Environment:   70,
		Lifestyle:     50,
		Convenience:   72.5,
	}

	// .30*62.5 + .25*80 + .20*70 + .15*50 + .10*72.5 = 67.5
	got := Score(in)
	if got.OverallScore != 67.5 {
		t.Errorf("OverallScore = %v, want 67.5", got.OverallScore)
	}
	if got.Grade != "B-" {
		t.Errorf("Grade = %q, want B-", got.Grade)
	}
}

func TestScoreComponentContributions(t *testing.T) {
	in := Inputs{Safety: 100, Affordability: 100, Environment: 100, Lifestyle: 100, Convenience: 100}
	got := Score(in)

	if got.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100", got.OverallScore)
	}
	if c := got.Components[DomainSafety].Contribution; c != 30 {
		t.Errorf("safety contribution = %v, want 30", c)
	}
	if c := got.Components[DomainConvenience].Contribution; c != 10 {
		t.Errorf("convenience contribution = %v, want 10", c)
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A+"}, {90, "A+"},
		{89.9, "A"}, {85, "A"},
		{84.9, "A-"}, {80, "A-"},
		{79.9, "B+"}, {75, "B+"},
		{74.9, "B"}, {70, "B"},
		{69.9, "B-"}, {65, "B-"},
		{64.9, "C+"}, {60, "C+"},
		{59.9, "C"}, {55, "C"},
		{54.9, "C-"}, {50, "C-"},
		{49.9, "D"}, {0, "D"},
	}
	for _, tt := range tests {
		if got := Grade(tt.score); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreStatusBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Status
	}{
		{80, StatusExcellent},
		{79.9, StatusGood}, {70, StatusGood},
		{69.9, StatusFair}, {60, StatusFair},
		{59.9, StatusNeedsAttention}, {50, StatusNeedsAttention},
		{49.9, StatusConcerning},
	}
	for _, tt := range tests {
		if got := ScoreStatus(tt.score); got != tt.want {
			t.Errorf("ScoreStatus(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestStrengthsSortedByScoreDescending(t *testing.T) {
	in := Inputs{
		Safety:        80,
		Affordability: 95,
		Environment:   75,
		Lifestyle:     40,
		Convenience:   60,
	}
	got := Score(in)

	want := []string{"Affordability", "Safety", "Environment"}
	if len(got.Strengths) != len(want) {
		t.Fatalf("Strengths = %v, want %v", got.Strengths, want)
	}
	for i := range want {
		if got.Strengths[i] != want[i] {
			t.Errorf("Strengths[%d] = %q, want %q", i, got.Strengths[i], want[i])
		}
	}
}

func TestConcernsSortedLowestFirst(t *testing.T) {
	in := Inputs{
		Safety:        55,
		Affordability: 90,
		Environment:   30,
		Lifestyle:     45,
		Convenience:   85,
	}
	got := Score(in)

	if len(got.Concerns) != 3 {
		t.Fatalf("got %d concerns, want 3", len(got.Concerns))
	}
	if got.Concerns[0].Area != "Environment" || got.Concerns[0].Score != 30 {
		t.Errorf("first concern = %+v, want Environment/30", got.Concerns[0])
	}
	if got.Concerns[2].Area != "Safety" {
		t.Errorf("last concern = %+v, want Safety", got.Concerns[2])
	}
}

func TestRecommendationCriticalFactorsOverride(t *testing.T) {
	// High overall but critical safety still yields the caution text.
	in := Inputs{Safety: 40, Affordability: 100, Environment: 100, Lifestyle: 100, Convenience: 100}
	got := Score(in)
	if !strings.Contains(got.Recommendation, "caution") {
		t.Errorf("Recommendation = %q, want safety caution", got.Recommendation)
	}

	in = Inputs{Safety: 100, Affordability: 40, Environment: 100, Lifestyle: 100, Convenience: 100}
	got = Score(in)
	if !strings.Contains(got.Recommendation, "Financial concern") {
		t.Errorf("Recommendation = %q, want financial concern", got.Recommendation)
	}
}

func TestRecommendationLadder(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{90, "Highly recommended"},
		{80, "Recommended."},
		{70, "Good option"},
		{60, "Mixed results"},
		{50, "Consider alternatives"},
	}
	for _, tt := range tests {
		got := recommendation(tt.overall, 70, 70)
		if !strings.Contains(got, tt.want) {
			t.Errorf("recommendation(%v) = %q, want substring %q", tt.overall, got, tt.want)
		}
	}
}

func TestDeltas(t *testing.T) {
	current := Inputs{Safety: 50, Affordability: 80, Environment: 60, Lifestyle: 0, Convenience: 70}
	destination := Inputs{Safety: 60, Affordability: 74, Environment: 62, Lifestyle: 50, Convenience: 70}

	deltas := Deltas(current, destination)

	safety := deltas[DomainSafety]
	if safety.Change != 10 || safety.Direction != DirectionImproving {
		t.Errorf("safety delta = %+v, want +10 improving", safety)
	}
	if safety.PercentChange != 20 {
		t.Errorf("safety percent_change = %v, want 20", safety.PercentChange)
	}

	afford := deltas[DomainAffordability]
	if afford.Direction != DirectionDeclining {
		t.Errorf("affordability direction = %q, want declining", afford.Direction)
	}

	env := deltas[DomainEnvironment]
	if env.Direction != DirectionStable {
		t.Errorf("environment direction = %q, want stable", env.Direction)
	}

	// current == 0 must not divide by zero.
	lifestyle := deltas[DomainLifestyle]
	if lifestyle.PercentChange != 0 {
		t.Errorf("lifestyle percent_change = %v, want 0", lifestyle.PercentChange)
	}
}

func TestDeltaDirectionBoundaries(t *testing.T) {
	tests := []struct {
		change float64
		want   Direction
	}{
		{5.1, DirectionImproving},
		{5, DirectionStable},
		{-5, DirectionStable},
		{-5.1, DirectionDeclining},
		{0, DirectionStable},
	}
	for _, tt := range tests {
		current := Inputs{Safety: 50}
		destination := Inputs{Safety: 50 + tt.change}
		got := Deltas(current, destination)[DomainSafety].Direction
		if got != tt.want {
			t.Errorf("change %v: direction = %q, want %q", tt.change, got, tt.want)
		}
	}
}

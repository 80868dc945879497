package cost

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubRents struct {
	rent float64
	err  error
}

func (s *stubRents) FairMarketRent(_ context.Context, _ string, _ int) (float64, error) {
	return s.rent, s.err
}

func TestZipToState(t *testing.T) {
	tests := []struct {
		zip  string
		want string
	}{
		{"10001", "NY"},
		{"12345", "NY"},
		{"90210", "CA"},
		{"77002", "TX"},
		{"73301", "TX"},
		{"60601", "IL"},
		{"02108", "MA"},
		{"07030", "NJ"},
		{"98101", "WA"},
		{"55401", "MN"},
		{"10001-1234", "NY"},
		{"99999", "NY"}, // unmapped defaults
		{"garbage", "NY"},
		{"", "NY"},
	}
	for _, tt := range tests {
		if got := ZipToState(tt.zip); got != tt.want {
			t.Errorf("ZipToState(%q) = %q, want %q", tt.zip, got, tt.want)
		}
	}
}

func TestEstimateRegionalTables(t *testing.T) {
	svc := NewService(ServiceConfig{Logger: zerolog.Nop()})

	// Non-metro NY ZIP: 2BR median 1400 * 1.35 index.
	est := svc.Estimate(context.Background(), "12345", 2)
	if est.Housing.MonthlyRent != 1890 {
		t.Errorf("monthly rent = %v, want 1890", est.Housing.MonthlyRent)
	}
	if est.State != "NY" {
		t.Errorf("state = %q, want NY", est.State)
	}
	if est.IsRealData {
		t.Error("table-based estimate must not claim real data")
	}

	// Expenses are rent fractions scaled again by the index.
	wantUtilities := round2(1890 * 0.12 * 1.35)
	if est.Expenses[CategoryUtilities] != wantUtilities {
		t.Errorf("utilities = %v, want %v", est.Expenses[CategoryUtilities], wantUtilities)
	}

	// Total is rent plus all categories.
	total := est.Housing.MonthlyRent
	for _, cat := range Categories {
		total += est.Expenses[cat]
	}
	if round2(total) != est.TotalMonthly {
		t.Errorf("total monthly = %v, want %v", est.TotalMonthly, round2(total))
	}
}

func TestEstimateMetroPremium(t *testing.T) {
	svc := NewService(ServiceConfig{Logger: zerolog.Nop()})

	metro := svc.Estimate(context.Background(), "10001", 2)
	nonMetro := svc.Estimate(context.Background(), "12345", 2)

	want := round2(nonMetro.Housing.MonthlyRent * 1.25)
	if metro.Housing.MonthlyRent != want {
		t.Errorf("metro rent = %v, want %v", metro.Housing.MonthlyRent, want)
	}
}

func TestEstimateBedroomDefault(t *testing.T) {
	svc := NewService(ServiceConfig{Logger: zerolog.Nop()})

	// Unknown bedroom count falls back to the 2BR median.
	got := svc.Estimate(context.Background(), "12345", 7)
	want := svc.Estimate(context.Background(), "12345", 2)
	if got.Housing.MonthlyRent != want.Housing.MonthlyRent {
		t.Errorf("7BR rent = %v, want 2BR fallback %v", got.Housing.MonthlyRent, want.Housing.MonthlyRent)
	}
}

func TestEstimateLiveRentOverride(t *testing.T) {
	svc := NewService(ServiceConfig{
		Provider: &stubRents{rent: 2100},
		Logger:   zerolog.Nop(),
	})

	est := svc.Estimate(context.Background(), "12345", 2)
	if est.Housing.MonthlyRent != 2100 {
		t.Errorf("monthly rent = %v, want live 2100", est.Housing.MonthlyRent)
	}
	if !est.IsRealData {
		t.Error("live rent estimate must claim real data")
	}
}

func TestEstimateProviderFailureFallsBack(t *testing.T) {
	svc := NewService(ServiceConfig{
		Provider: &stubRents{err: errors.New("down")},
		Logger:   zerolog.Nop(),
	})

	est := svc.Estimate(context.Background(), "12345", 2)
	if est.Housing.MonthlyRent != 1890 {
		t.Errorf("monthly rent = %v, want table 1890", est.Housing.MonthlyRent)
	}
	if est.IsRealData {
		t.Error("fallback estimate must not claim real data")
	}
}

func TestAffordabilityScoreLadder(t *testing.T) {
	tests := []struct {
		total float64
		want  float64
	}{
		{1500, 100},
		{1800, 100},
		{2400, 90},
		{3000, 80},
		{3600, 70},
		{4200, 60},
		{4800, 50},
		{5400, 40},
		{5600, 39},   // 40 - 200/200
		{10000, 20},  // floored
	}
	for _, tt := range tests {
		if got := AffordabilityScore(tt.total); got != tt.want {
			t.Errorf("AffordabilityScore(%v) = %v, want %v", tt.total, got, tt.want)
		}
	}
}

func TestAffordabilityMonotonicity(t *testing.T) {
	prev := AffordabilityScore(0)
	for total := 500.0; total <= 12000; total += 50 {
		cur := AffordabilityScore(total)
		if cur > prev {
			t.Fatalf("score increased from %v to %v at total %v", prev, cur, total)
		}
		prev = cur
	}
}

func TestCompare(t *testing.T) {
	svc := NewService(ServiceConfig{Logger: zerolog.Nop()})

	// Cheap OH destination vs metro NY current.
	cmp := svc.Compare(context.Background(), "10001", "44101", 2)

	if cmp.MonthlyDifference >= 0 {
		t.Errorf("expected OH cheaper than metro NY, diff = %v", cmp.MonthlyDifference)
	}
	if cmp.IsMoreExpensive {
		t.Error("IsMoreExpensive = true, want false")
	}
	if cmp.ScoreDifference <= 0 {
		t.Errorf("expected affordability to improve, score diff = %v", cmp.ScoreDifference)
	}
	if len(cmp.ExpenseBreakdown) != len(Categories) {
		t.Errorf("expense breakdown has %d categories, want %d", len(cmp.ExpenseBreakdown), len(Categories))
	}
}

func TestCostRecommendationTiers(t *testing.T) {
	tests := []struct {
		diff float64
		want string
	}{
		{-300, "Great savings"},
		{-50, "financial cushion"},
		{100, "manageable"},
		{350, "Significant increase"},
		{900, "Major cost increase"},
	}
	for _, tt := range tests {
		got := costRecommendation(tt.diff)
		if !strings.Contains(got, tt.want) {
			t.Errorf("costRecommendation(%v) = %q, want substring %q", tt.diff, got, tt.want)
		}
	}
}

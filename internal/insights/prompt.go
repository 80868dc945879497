package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/commute"
	"github.com/movewise/movewise/internal/cost"
	"github.com/movewise/movewise/internal/crime"
	"github.com/movewise/movewise/internal/noise"
	"github.com/movewise/movewise/internal/scoring"
)

const sectionRule = "═══════════════════════════════════════════════════════════════"

// Preferences are the schedule and taste fields woven into the prompt.
type Preferences struct {
	WorkHours       string
	SleepHours      string
	NoisePreference string
	Hobbies         []string
}

// PromptData collects every comparison result the prompt references.
// Nil sections are skipped.
type PromptData struct {
	CurrentAddress     string
	DestinationAddress string

	Crime     *crime.Comparison
	Noise     *noise.Comparison
	Cost      *cost.Comparison
	Amenities *amenity.Comparison
	Commute   *commute.Info

	Preferences *Preferences
	Scores      *scoring.Composite
}

// BuildPrompt renders the full data prompt for the generation backend.
func BuildPrompt(d *PromptData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the lifestyle impact of moving from %s to %s.\n",
		d.CurrentAddress, d.DestinationAddress)

	writeCrimeSection(&b, d.Crime)
	writeNoiseSection(&b, d.Noise, d.Preferences)
	writeCostSection(&b, d.Cost)
	writeAmenitySection(&b, d.Amenities)
	writeCommuteSection(&b, d.Commute)
	writePreferencesSection(&b, d.Preferences)
	writeScoresSection(&b, d.Scores)
	writeInstructions(&b)

	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n%s\n\n", sectionRule, title, sectionRule)
}

func writeCrimeSection(b *strings.Builder, c *crime.Comparison) {
	if c == nil || c.Current == nil || c.Destination == nil {
		return
	}
	section(b, "REAL CRIME DATA (Last 30 Days, 5-mile radius)")

	writeCrimeReport(b, "CURRENT LOCATION", c.Current)
	writeCrimeReport(b, "DESTINATION LOCATION", c.Destination)

	b.WriteString("COMPARISON:\n")
	fmt.Fprintf(b, "• Crime Difference: %+d crimes/month\n", c.CrimeDifference)
	fmt.Fprintf(b, "• Safety Score Change: %+.1f points\n", c.ScoreDifference)
	fmt.Fprintf(b, "• Assessment: %s\n", c.Recommendation)
}

func writeCrimeReport(b *strings.Builder, title string, r *crime.Report) {
	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "• Total Crimes: %d crimes in 30 days\n", r.TotalCrimes)
	fmt.Fprintf(b, "• Daily Average: %.2f crimes/day\n", r.DailyAverage)
	fmt.Fprintf(b, "• Safety Score: %.1f/100\n\n", r.SafetyScore)

	b.WriteString("Crime Types:\n")
	fmt.Fprintf(b, "• Violent: %d\n", r.Categories[crime.CategoryViolent])
	fmt.Fprintf(b, "• Property: %d\n", r.Categories[crime.CategoryProperty])
	fmt.Fprintf(b, "• Theft: %d\n", r.Categories[crime.CategoryTheft])
	fmt.Fprintf(b, "• Vandalism: %d\n\n", r.Categories[crime.CategoryVandalism])

	b.WriteString("Temporal Analysis:\n")
	fmt.Fprintf(b, "• During Sleep Hours: %d crimes (%.1f%%)\n",
		r.Temporal.DuringSleep, r.Temporal.SleepPercent)
	fmt.Fprintf(b, "• During Work Hours: %d crimes (%.1f%%)\n",
		r.Temporal.DuringWork, r.Temporal.WorkPercent)
	fmt.Fprintf(b, "• During Commute: %d crimes\n", r.Temporal.DuringCommute)
	fmt.Fprintf(b, "• Peak Crime Hours: %v\n\n", r.Temporal.PeakHours)

	fmt.Fprintf(b, "Trend: %s (%+.1f%%)\n\n", r.Trend.Direction, r.Trend.ChangePercent)
}

func writeNoiseSection(b *strings.Builder, n *noise.Comparison, prefs *Preferences) {
	if n == nil || n.Current == nil || n.Destination == nil {
		return
	}
	section(b, "REAL NOISE DATA (OpenStreetMap Road Model, 2-mile radius)")

	writeNoiseAnalysis(b, "CURRENT LOCATION", n.Current)
	writeNoiseAnalysis(b, "DESTINATION LOCATION", n.Destination)

	preference := "moderate"
	if prefs != nil && prefs.NoisePreference != "" {
		preference = prefs.NoisePreference
	}

	b.WriteString("COMPARISON:\n")
	fmt.Fprintf(b, "• dB Difference: %+.1f dB\n", n.DBDifference)
	fmt.Fprintf(b, "• Description: %s\n", n.ChangeDescription)
	fmt.Fprintf(b, "• User Preference: %s\n", preference)
	fmt.Fprintf(b, "• Match Quality: %s\n", n.PreferenceMatch.Quality)
	fmt.Fprintf(b, "• Recommendation: %s\n", n.Recommendation)
}

func writeNoiseAnalysis(b *strings.Builder, title string, a *noise.Analysis) {
	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "• Estimated Noise: %.1f dB\n", a.EstimatedDB)
	fmt.Fprintf(b, "• Category: %s\n", a.Category)
	fmt.Fprintf(b, "• Noise Score: %.0f/100\n\n", a.Score)

	b.WriteString("Road Breakdown:\n")
	fmt.Fprintf(b, "• Highways: %d roads\n", a.RoadBreakdown["highway"])
	fmt.Fprintf(b, "• Arterials: %d roads\n", a.RoadBreakdown["arterial"])
	fmt.Fprintf(b, "• Residential: %d roads\n", a.RoadBreakdown["residential"])
	fmt.Fprintf(b, "• Total Roads: %d\n", a.TotalRoads)
	fmt.Fprintf(b, "• Dominant Source: %s\n\n", a.DominantSource)
}

func writeCostSection(b *strings.Builder, c *cost.Comparison) {
	if c == nil || c.Current == nil || c.Destination == nil {
		return
	}
	section(b, "REAL COST DATA (HUD Fair Market Rents + Regional Index)")

	writeCostEstimate(b, "CURRENT LOCATION", c.Current)
	writeCostEstimate(b, "DESTINATION LOCATION", c.Destination)

	b.WriteString("COMPARISON:\n")
	fmt.Fprintf(b, "• Monthly Difference: $%+.2f\n", c.MonthlyDifference)
	fmt.Fprintf(b, "• Annual Difference: $%+.2f\n", c.AnnualDifference)
	fmt.Fprintf(b, "• Percent Change: %+.1f%%\n", c.PercentChange)
	fmt.Fprintf(b, "• Housing Change: $%+.2f/month\n", c.HousingDifference)
	fmt.Fprintf(b, "• Assessment: %s\n", c.Recommendation)
}

func writeCostEstimate(b *strings.Builder, title string, e *cost.Estimate) {
	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "• Total Monthly: $%.2f\n", e.TotalMonthly)
	fmt.Fprintf(b, "• Total Annual: $%.2f\n", e.TotalAnnual)
	fmt.Fprintf(b, "• Affordability Score: %.1f/100\n\n", e.AffordabilityScore)

	b.WriteString("Breakdown:\n")
	fmt.Fprintf(b, "• Housing (HUD FMR): $%.2f/month\n", e.Housing.MonthlyRent)
	fmt.Fprintf(b, "• Utilities: $%.2f\n", e.Expenses[cost.CategoryUtilities])
	fmt.Fprintf(b, "• Groceries: $%.2f\n", e.Expenses[cost.CategoryGroceries])
	fmt.Fprintf(b, "• Transportation: $%.2f\n", e.Expenses[cost.CategoryTransportation])
	fmt.Fprintf(b, "• Healthcare: $%.2f\n", e.Expenses[cost.CategoryHealthcare])
	fmt.Fprintf(b, "• Entertainment: $%.2f\n", e.Expenses[cost.CategoryEntertainment])
	fmt.Fprintf(b, "• Cost Index: %.1f\n\n", e.CostIndex)
}

func writeAmenitySection(b *strings.Builder, a *amenity.Comparison) {
	if a == nil || a.Destination == nil {
		return
	}
	section(b, "AMENITIES & LIFESTYLE")

	b.WriteString("Destination Amenities:\n")
	fmt.Fprintf(b, "• Total Count: %d\n", a.Destination.TotalCount)
	fmt.Fprintf(b, "• Average Distance: %.1f miles\n\n", a.Destination.AverageDistanceMiles)

	b.WriteString("By Type:\n")
	types := make([]string, 0, len(a.Destination.ByType))
	for placeType := range a.Destination.ByType {
		types = append(types, placeType)
	}
	sort.Strings(types)
	for _, placeType := range types {
		fmt.Fprintf(b, "• %s: %d\n", titleCase(placeType), a.Destination.ByType[placeType])
	}
}

func writeCommuteSection(b *strings.Builder, c *commute.Info) {
	if c == nil {
		return
	}
	section(b, "COMMUTE INFORMATION")

	if c.DurationMinutes != nil {
		fmt.Fprintf(b, "• Duration: %d minutes\n", *c.DurationMinutes)
	} else {
		b.WriteString("• Duration: unknown\n")
	}
	if c.Distance != "" {
		fmt.Fprintf(b, "• Distance: %s\n", c.Distance)
	}
	fmt.Fprintf(b, "• Method: %s\n", titleCase(string(c.Mode)))
}

func writePreferencesSection(b *strings.Builder, p *Preferences) {
	if p == nil {
		return
	}
	section(b, "USER PREFERENCES & SCHEDULE")

	hobbies := "None specified"
	if len(p.Hobbies) > 0 {
		hobbies = strings.Join(p.Hobbies, ", ")
	}
	fmt.Fprintf(b, "• Work Schedule: %s\n", p.WorkHours)
	fmt.Fprintf(b, "• Sleep Schedule: %s\n", p.SleepHours)
	fmt.Fprintf(b, "• Noise Tolerance: %s\n", titleCase(p.NoisePreference))
	fmt.Fprintf(b, "• Hobbies/Interests: %s\n", hobbies)
}

func writeScoresSection(b *strings.Builder, s *scoring.Composite) {
	if s == nil {
		return
	}
	section(b, "OVERALL SCORES (Weighted Composite)")

	fmt.Fprintf(b, "Overall Score: %.1f/100 (Grade: %s)\n\n", s.OverallScore, s.Grade)

	b.WriteString("Component Scores:\n")
	for _, domain := range scoring.Domains {
		component := s.Components[domain]
		fmt.Fprintf(b, "• %s: %.1f/100 (%.0f%% weight)\n",
			titleCase(string(domain)), component.Score, component.Weight*100)
	}

	concerns := make([]string, 0, len(s.Concerns))
	for _, c := range s.Concerns {
		concerns = append(concerns, c.Area)
	}
	fmt.Fprintf(b, "\nStrengths: %s\n", strings.Join(s.Strengths, ", "))
	fmt.Fprintf(b, "Concerns: %s\n", strings.Join(concerns, ", "))
}

func writeInstructions(b *strings.Builder) {
	section(b, "INSTRUCTIONS")

	b.WriteString(`Based on this REAL DATA, provide:

1. OVERVIEW (2-3 sentences)
   - Summarize the most important changes
   - Highlight key data points
   - Set the tone (positive, cautious, mixed)

2. LIFESTYLE CHANGES (exactly 6 bullet points with ✓)
   - Sleep quality (reference crime data during sleep hours + noise levels)
   - Amenities access (reference actual amenity counts)
   - Dining/entertainment (reference data)
   - Safety (reference specific crime numbers and trends)
   - Commute (reference actual time)
   - Cost (reference actual dollar amounts)
   - Be SPECIFIC with data points, not generic

3. DETAILED INSIGHTS (3-4 paragraphs)
   - Deep dive into the most significant changes
   - Reference specific numbers from the data
   - Explain what the data means for daily life
   - Consider user's schedule and preferences
   - Provide context and interpretation
   - End with encouraging guidance

4. PERSONALIZED ACTION STEPS (5-7 specific actions)
   - Based on the ACTUAL data provided
   - Address any concerns identified
   - Suggest specific next steps
   - Include visit times based on crime peak hours
   - Budget planning with actual dollar amounts
   - Security measures if crime during sleep hours is high
   - Noise mitigation if needed
   - Be concrete and actionable, not generic

Format EXACTLY as:
---OVERVIEW---
[2-3 sentence summary]

---LIFESTYLE_CHANGES---
✓ [Change 1 with specific data]
✓ [Change 2 with specific data]
✓ [Change 3 with specific data]
✓ [Change 4 with specific data]
✓ [Change 5 with specific data]
✓ [Change 6 with specific data]

---INSIGHTS---
[3-4 detailed paragraphs with data interpretation]

---ACTION_STEPS---
→ [Step 1: Specific action]
→ [Step 2: Specific action]
→ [Step 3: Specific action]
→ [Step 4: Specific action]
→ [Step 5: Specific action]
`)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package scoring

import (
	"math"
	"sort"
)

// Weights for each domain. They must sum to exactly 1.0.
var Weights = map[Domain]float64{
	DomainSafety:        0.30,
	DomainAffordability: 0.25,
	DomainEnvironment:   0.20,
	DomainLifestyle:     0.15,
	DomainConvenience:   0.10,
}

const (
	strengthThreshold = 75
	concernThreshold  = 60
	criticalThreshold = 50

	// deltaStableBand is the |change| band treated as stable.
	deltaStableBand = 5
)

// Score combines the five domain scores into a weighted composite.
func Score(in Inputs) Composite {
	overall := 0.0
	components := make(map[Domain]ComponentScore, len(Domains))
	for _, d := range Domains {
		s := in.Get(d)
		w := Weights[d]
		overall += s * w
		components[d] = ComponentScore{
			Score:        round1(s),
			Weight:       w,
			Contribution: round1(s * w),
			Status:       ScoreStatus(s),
		}
	}

	return Composite{
		OverallScore:   round1(overall),
		Grade:          Grade(overall),
		Components:     components,
		Strengths:      strengths(in),
		Concerns:       concerns(in),
		Recommendation: recommendation(overall, in.Safety, in.Affordability),
	}
}

// Grade converts a 0-100 score to a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	default:
		return "D"
	}
}

// ScoreStatus converts a 0-100 score to a qualitative status label.
func ScoreStatus(score float64) Status {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 60:
		return StatusFair
	case score >= 50:
		return StatusNeedsAttention
	default:
		return StatusConcerning
	}
}

// Deltas computes per-domain score changes from current to destination.
func Deltas(current, destination Inputs) map[Domain]Delta {
	deltas := make(map[Domain]Delta, len(Domains))
	for _, d := range Domains {
		cur := current.Get(d)
		dst := destination.Get(d)
		change := dst - cur

		direction := DirectionStable
		if change > deltaStableBand {
			direction = DirectionImproving
		} else if change < -deltaStableBand {
			direction = DirectionDeclining
		}

		percent := 0.0
		if cur > 0 {
			percent = round1(change / cur * 100)
		}

		deltas[d] = Delta{
			Current:       round1(cur),
			Destination:   round1(dst),
			Change:        round1(change),
			Direction:     direction,
			PercentChange: percent,
		}
	}
	return deltas
}

// strengths returns domain display names with scores at or above the
// strength threshold, highest first.
func strengths(in Inputs) []string {
	var picked []Domain
	for _, d := range Domains {
		if in.Get(d) >= strengthThreshold {
			picked = append(picked, d)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return in.Get(picked[i]) > in.Get(picked[j])
	})

	out := make([]string, 0, len(picked))
	for _, d := range picked {
		out = append(out, displayName(d))
	}
	return out
}

// concerns returns domains scoring below the concern threshold, lowest first.
func concerns(in Inputs) []Concern {
	var out []Concern
	for _, d := range Domains {
		if s := in.Get(d); s < concernThreshold {
			out = append(out, Concern{Area: displayName(d), Score: round1(s)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// recommendation produces the overall move recommendation. Safety and
// affordability are critical factors and override the overall ladder.
func recommendation(overall, safety, affordability float64) string {
	if safety < criticalThreshold {
		return "Proceed with caution. Safety scores are concerning. Consider visiting the area and researching crime patterns before committing."
	}
	if affordability < criticalThreshold {
		return "Financial concern. This move may strain your budget significantly. Ensure you have adequate income or savings."
	}

	switch {
	case overall >= 85:
		return "Highly recommended. This location scores well across all factors and appears to be an excellent fit."
	case overall >= 75:
		return "Recommended. This is a solid choice with strong performance in key areas."
	case overall >= 65:
		return "Good option. This location has both strengths and some trade-offs to consider."
	case overall >= 55:
		return "Mixed results. Carefully weigh the pros and cons based on your priorities."
	default:
		return "Consider alternatives. This location has several concerning factors that may impact your quality of life."
	}
}

func displayName(d Domain) string {
	switch d {
	case DomainSafety:
		return "Safety"
	case DomainAffordability:
		return "Affordability"
	case DomainEnvironment:
		return "Environment"
	case DomainLifestyle:
		return "Lifestyle"
	case DomainConvenience:
		return "Convenience"
	}
	return string(d)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

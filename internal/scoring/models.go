// Package scoring combines per-domain scores into a weighted composite grade.
package scoring

// Domain identifies a scored aspect of a location.
type Domain string

const (
	DomainSafety        Domain = "safety"
	DomainAffordability Domain = "affordability"
	DomainEnvironment   Domain = "environment"
	DomainLifestyle     Domain = "lifestyle"
	DomainConvenience   Domain = "convenience"
)

// Domains lists all scored domains in weight order.
var Domains = []Domain{
	DomainSafety,
	DomainAffordability,
	DomainEnvironment,
	DomainLifestyle,
	DomainConvenience,
}

// Status is a qualitative label for a component score.
type Status string

const (
	StatusExcellent      Status = "Excellent"
	StatusGood           Status = "Good"
	StatusFair           Status = "Fair"
	StatusNeedsAttention Status = "Needs Attention"
	StatusConcerning     Status = "Concerning"
)

// Direction describes how a score changes between two locations.
type Direction string

const (
	DirectionImproving Direction = "improving"
	DirectionDeclining Direction = "declining"
	DirectionStable    Direction = "stable"
)

// Inputs holds the five normalized domain scores (0-100) for one location.
type Inputs struct {
	Safety        float64 `json:"safety"`
	Affordability float64 `json:"affordability"`
	Environment   float64 `json:"environment"`
	Lifestyle     float64 `json:"lifestyle"`
	Convenience   float64 `json:"convenience"`
}

// Get returns the score for a domain.
func (in Inputs) Get(d Domain) float64 {
	switch d {
	case DomainSafety:
		return in.Safety
	case DomainAffordability:
		return in.Affordability
	case DomainEnvironment:
		return in.Environment
	case DomainLifestyle:
		return in.Lifestyle
	case DomainConvenience:
		return in.Convenience
	}
	return 0
}

// ComponentScore is one domain's contribution to the composite.
type ComponentScore struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Status       Status  `json:"status"`
}

// Concern flags a low-scoring domain.
type Concern struct {
	Area  string  `json:"area"`
	Score float64 `json:"score"`
}

// Composite is the full weighted scoring result for one location.
type Composite struct {
	OverallScore   float64                   `json:"overall_score"`
	Grade          string                    `json:"grade"`
	Components     map[Domain]ComponentScore `json:"component_scores"`
	Strengths      []string                  `json:"strengths"`
	Concerns       []Concern                 `json:"concerns"`
	Recommendation string                    `json:"recommendation"`
}

// Delta captures the change of one domain score between two locations.
type Delta struct {
	Current       float64   `json:"current"`
	Destination   float64   `json:"destination"`
	Change        float64   `json:"change"`
	Direction     Direction `json:"direction"`
	PercentChange float64   `json:"percent_change"`
}

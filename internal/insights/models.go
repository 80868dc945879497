// Package insights turns a structured comparison result into narrative
// guidance via a text-generation provider.
package insights

import "errors"

// Common errors returned by insight providers.
var (
	// ErrProviderUnavailable indicates the generation backend could not
	// be reached or returned a server error.
	ErrProviderUnavailable = errors.New("insights provider unavailable")

	// ErrMalformedResponse indicates the backend returned a payload that
	// could not be interpreted.
	ErrMalformedResponse = errors.New("malformed insights provider response")
)

// Insights is the parsed narrative payload.
type Insights struct {
	OverviewSummary  string   `json:"overview_summary"`
	LifestyleChanges []string `json:"lifestyle_changes"`
	Details          string   `json:"ai_insights"`
	ActionSteps      []string `json:"action_steps"`
}

// Placeholder is returned whenever generation or parsing fails. The
// comparison pipeline never propagates insight failures.
func Placeholder() *Insights {
	return &Insights{
		OverviewSummary:  "Analysis temporarily unavailable. Please check the detailed data tabs for comprehensive information.",
		LifestyleChanges: []string{},
		ActionSteps:      []string{},
	}
}

package models

import "github.com/movewise/movewise/internal/analysis"

// AnalysisList is the GET /v1/analyses response envelope.
type AnalysisList struct {
	Analyses []*analysis.Summary `json:"analyses"`
	Count    int                 `json:"count"`
}

// Package cost estimates monthly living costs per postal code and scores
// affordability.
package cost

import "errors"

// Provider errors.
var (
	ErrProviderUnavailable = errors.New("rent provider unavailable")
	ErrNoFMRData           = errors.New("no fair market rent data for postal code")
)

// Category is a monthly expense category scaled from rent.
type Category string

const (
	CategoryUtilities      Category = "utilities"
	CategoryGroceries      Category = "groceries"
	CategoryTransportation Category = "transportation"
	CategoryHealthcare     Category = "healthcare"
	CategoryEntertainment  Category = "entertainment"
	CategoryMiscellaneous  Category = "miscellaneous"
)

// Categories lists all expense categories in reporting order.
var Categories = []Category{
	CategoryUtilities,
	CategoryGroceries,
	CategoryTransportation,
	CategoryHealthcare,
	CategoryEntertainment,
	CategoryMiscellaneous,
}

// Housing describes the rent component of a cost estimate.
type Housing struct {
	MonthlyRent float64 `json:"monthly_rent"`
	AnnualRent  float64 `json:"annual_rent"`
	Bedrooms    int     `json:"bedrooms"`
	Year        int     `json:"year"`
	Source      string  `json:"source"`
}

// Estimate is the full monthly cost picture for one postal code.
type Estimate struct {
	Location           string               `json:"location"`
	ZipCode            string               `json:"zip_code"`
	State              string               `json:"state"`
	Housing            Housing              `json:"housing"`
	Expenses           map[Category]float64 `json:"expenses"`
	TotalMonthly       float64              `json:"total_monthly"`
	TotalAnnual        float64              `json:"total_annual"`
	CPIIndex           float64              `json:"cpi_index"`
	CostIndex          float64              `json:"cost_index"`
	AffordabilityScore float64              `json:"affordability_score"`
	DataSource         string               `json:"data_source"`
	IsRealData         bool                 `json:"is_real_data"`
}

// ExpenseDelta is the per-category change between two estimates.
type ExpenseDelta struct {
	Current       float64 `json:"current"`
	Destination   float64 `json:"destination"`
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percent_change"`
}

// Comparison contrasts costs between a current and destination postal code.
type Comparison struct {
	Current           *Estimate                 `json:"current"`
	Destination       *Estimate                 `json:"destination"`
	MonthlyDifference float64                   `json:"monthly_difference"`
	AnnualDifference  float64                   `json:"annual_difference"`
	PercentChange     float64                   `json:"percent_change"`
	IsMoreExpensive   bool                      `json:"is_more_expensive"`
	ScoreDifference   float64                   `json:"score_difference"`
	HousingDifference float64                   `json:"housing_difference"`
	ExpenseBreakdown  map[Category]ExpenseDelta `json:"expense_breakdown"`
	Recommendation    string                    `json:"recommendation"`
}

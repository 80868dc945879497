package cost

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RentProvider supplies live fair market rents for a postal code.
type RentProvider interface {
	FairMarketRent(ctx context.Context, zipCode string, bedrooms int) (float64, error)
}

// ServiceConfig holds configuration for the cost service.
type ServiceConfig struct {
	// Provider is an optional live rent source. When nil or failing, the
	// regional tables are used.
	Provider RentProvider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service estimates living costs per postal code.
type Service struct {
	provider RentProvider
	logger   zerolog.Logger
}

// NewService creates a new cost service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Compare estimates both postal codes and contrasts them.
func (s *Service) Compare(ctx context.Context, currentZip, destinationZip string, bedrooms int) *Comparison {
	current := s.Estimate(ctx, currentZip, bedrooms)
	destination := s.Estimate(ctx, destinationZip, bedrooms)

	difference := destination.TotalMonthly - current.TotalMonthly
	percent := 0.0
	if current.TotalMonthly > 0 {
		percent = round1(difference / current.TotalMonthly * 100)
	}

	breakdown := make(map[Category]ExpenseDelta, len(Categories))
	for _, cat := range Categories {
		cur := current.Expenses[cat]
		dst := destination.Expenses[cat]
		diff := dst - cur
		pct := 0.0
		if cur > 0 {
			pct = round1(diff / cur * 100)
		}
		breakdown[cat] = ExpenseDelta{
			Current:       cur,
			Destination:   dst,
			Difference:    round2(diff),
			PercentChange: pct,
		}
	}

	return &Comparison{
		Current:           current,
		Destination:       destination,
		MonthlyDifference: round2(difference),
		AnnualDifference:  round2(difference * 12),
		PercentChange:     percent,
		IsMoreExpensive:   difference > 0,
		ScoreDifference:   round1(destination.AffordabilityScore - current.AffordabilityScore),
		HousingDifference: round2(destination.Housing.MonthlyRent - current.Housing.MonthlyRent),
		ExpenseBreakdown:  breakdown,
		Recommendation:    costRecommendation(difference),
	}
}

// Estimate calculates the full monthly cost picture for one postal code.
// Live rent data is preferred; any provider failure silently degrades to
// the regional tables.
func (s *Service) Estimate(ctx context.Context, zipCode string, bedrooms int) *Estimate {
	state := ZipToState(zipCode)
	index := stateCostIndex[state]
	if index == 0 {
		index = defaultCostIndex
	}

	baseRent, ok := nationalMedianRent[bedrooms]
	if !ok {
		baseRent = defaultMedianRent
	}

	monthlyRent := round2(baseRent * index)
	rentSource := "Census Bureau (adjusted)"
	isReal := false

	if s.provider != nil {
		fmr, err := s.provider.FairMarketRent(ctx, zipCode, bedrooms)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("zip", zipCode).
				Msg("fair market rent lookup failed, using regional tables")
		} else {
			monthlyRent = round2(fmr)
			rentSource = "HUD Fair Market Rent"
			isReal = true
		}
	}

	if isMajorMetro(zipCode) && !isReal {
		monthlyRent = round2(monthlyRent * metroRentPremium)
	}

	expenses := make(map[Category]float64, len(Categories))
	total := monthlyRent
	for _, cat := range Categories {
		// Expense categories are scaled from rent, then adjusted again by
		// the regional index.
		v := round2(monthlyRent * expenseFractions[cat] * index)
		expenses[cat] = v
		total += v
	}

	return &Estimate{
		Location:           zipCode + ", " + state,
		ZipCode:            zipCode,
		State:              state,
		Housing: Housing{
			MonthlyRent: monthlyRent,
			AnnualRent:  round2(monthlyRent * 12),
			Bedrooms:    bedrooms,
			Year:        time.Now().Year(),
			Source:      rentSource,
		},
		Expenses:           expenses,
		TotalMonthly:       round2(total),
		TotalAnnual:        round2(total * 12),
		CPIIndex:           round1(100 * index),
		CostIndex:          index,
		AffordabilityScore: AffordabilityScore(total),
		DataSource:         rentSource + " + Regional Indices",
		IsRealData:         isReal,
	}
}

// ZipToState resolves a postal code to a state using the ordered ZIP
// ranges. Unknown or malformed codes default to NY.
func ZipToState(zipCode string) string {
	digits := zipCode
	if len(digits) > 5 {
		digits = digits[:5]
	}
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return defaultState
	}
	for _, r := range zipRanges {
		if n >= r.lo && n <= r.hi {
			return r.state
		}
	}
	return defaultState
}

// AffordabilityScore maps total monthly costs to a 0-100 score, higher
// meaning more affordable, anchored to the national median.
func AffordabilityScore(totalMonthly float64) float64 {
	m := nationalMedianMonthly
	switch {
	case totalMonthly <= m*0.6:
		return 100
	case totalMonthly <= m*0.8:
		return 90
	case totalMonthly <= m:
		return 80
	case totalMonthly <= m*1.2:
		return 70
	case totalMonthly <= m*1.4:
		return 60
	case totalMonthly <= m*1.6:
		return 50
	case totalMonthly <= m*1.8:
		return 40
	default:
		return round1(math.Max(20, 40-(totalMonthly-m*1.8)/200))
	}
}

func isMajorMetro(zipCode string) bool {
	for _, prefix := range metroPrefixes {
		if strings.HasPrefix(zipCode, prefix) {
			return true
		}
	}
	return false
}

func costRecommendation(monthlyDiff float64) string {
	abs := math.Abs(monthlyDiff)
	switch {
	case monthlyDiff < -200:
		return fmt.Sprintf("Great savings! You'll save $%.0f/month ($%.0f/year). Consider investing the difference or upgrading your lifestyle.", abs, abs*12)
	case monthlyDiff < 0:
		return fmt.Sprintf("You'll save $%.0f/month ($%.0f/year) - a nice financial cushion.", abs, abs*12)
	case monthlyDiff < 200:
		return fmt.Sprintf("Costs will increase by $%.0f/month, but this is manageable given your budget.", monthlyDiff)
	case monthlyDiff < 500:
		return fmt.Sprintf("Significant increase: $%.0f/month ($%.0f/year). Budget accordingly and review expenses.", monthlyDiff, monthlyDiff*12)
	default:
		return fmt.Sprintf("Major cost increase: $%.0f/month ($%.0f/year). This requires careful financial planning.", monthlyDiff, monthlyDiff*12)
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

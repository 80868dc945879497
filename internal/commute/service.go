package commute

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Provider fetches commute estimates from an external routing source.
type Provider interface {
	Estimate(ctx context.Context, originLat, originLon float64, workAddress string, mode Mode) (*Info, error)
}

// Default estimate used when the user has no work address on file.
const (
	defaultDurationMinutes = 25
	defaultDistance        = "12.0 mi"

	// missingScore is the convenience score when no duration is known.
	missingScore = 70
)

// ServiceConfig holds configuration for the commute service.
type ServiceConfig struct {
	// Provider is the distance matrix provider. May be nil; estimates then
	// always fall back.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service estimates commutes with provider fallback.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new commute service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Estimate returns the commute from the given origin to the work address.
// Provider failures degrade to an "unavailable" estimate, never an error.
// An empty work address yields the fixed default commute.
func (s *Service) Estimate(ctx context.Context, originLat, originLon float64, workAddress string, mode Mode) *Info {
	if workAddress == "" {
		d := defaultDurationMinutes
		return &Info{
			DurationMinutes: &d,
			Mode:            ModeDriving,
			Distance:        defaultDistance,
			Description:     fmt.Sprintf("Your commute will be approximately %d minutes by %s.", d, ModeDriving),
			IsRealData:      false,
		}
	}

	if s.provider != nil {
		info, err := s.provider.Estimate(ctx, originLat, originLon, workAddress, mode)
		if err == nil {
			return info
		}
		s.logger.Warn().
			Err(err).
			Str("mode", string(mode)).
			Msg("commute provider failed, using fallback")
	}

	return &Info{
		DurationMinutes: nil,
		Mode:            mode,
		Description:     "Commute information unavailable.",
		IsRealData:      false,
	}
}

// ConvenienceScore converts a commute estimate to a 0-100 convenience score.
// Commutes of 20 minutes or less score 100; longer commutes decay in steps.
func ConvenienceScore(info *Info) float64 {
	if info == nil || info.DurationMinutes == nil {
		return missingScore
	}

	d := float64(*info.DurationMinutes)
	switch {
	case d <= 20:
		return 100
	case d <= 30:
		return 90 - (d - 20)
	case d <= 45:
		return 80 - (d-30)*1.5
	case d <= 60:
		return 60 - (d-45)*2
	default:
		score := 30 - (d-60)*0.5
		if score < 20 {
			return 20
		}
		return score
	}
}

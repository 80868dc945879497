// Package geocode resolves free-form addresses to coordinates and
// coordinates to postal codes.
package geocode

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/movewise/movewise/pkg/geo"
)

// Common errors returned by geocoding providers.
var (
	// ErrProviderUnavailable indicates the upstream service could not be
	// reached or returned a server error.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")

	// ErrNotFound indicates the address could not be resolved.
	ErrNotFound = errors.New("address not found")

	// ErrNoPostalCode indicates no postal code covers the coordinate.
	ErrNoPostalCode = errors.New("no postal code for coordinate")
)

// fallbackPostalCode stands in when reverse geocoding fails. Downstream
// cost tables treat it as a Manhattan ZIP.
const fallbackPostalCode = "10001"

// Provider performs forward and reverse geocoding.
type Provider interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
	PostalCode(ctx context.Context, p geo.Point) (string, error)
}

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding backend.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service wraps a geocoding provider with the degradation policy the
// comparison pipeline expects.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Resolve converts an address to a coordinate. Failure here is the
// caller's problem: an unresolvable address invalidates the request.
func (s *Service) Resolve(ctx context.Context, address string) (geo.Point, error) {
	return s.provider.Geocode(ctx, address)
}

// ResolvePostalCode reverse-geocodes a coordinate to its postal code,
// degrading to a fixed fallback when the lookup fails.
func (s *Service) ResolvePostalCode(ctx context.Context, p geo.Point) string {
	zip, err := s.provider.PostalCode(ctx, p)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Float64("lat", p.Lat).
			Float64("lon", p.Lon).
			Msg("reverse geocode failed, using fallback postal code")
		return fallbackPostalCode
	}
	return zip
}

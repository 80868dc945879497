package insights

import (
	"context"

	"github.com/rs/zerolog"
)

// ChatProvider generates a completion for a system/user prompt pair.
type ChatProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = `You are a relocation expert helping people make informed decisions about moving.

You have access to REAL data from authoritative sources:
- FBI Crime Data Explorer: actual crimes from the past 30 days
- OpenStreetMap: road classifications and noise modeling
- HUD Fair Market Rents: official government housing costs
- Google Places: amenity counts around each location

Provide clear, data-driven insights with a friendly, personalized tone. Focus on actionable recommendations based on the user's specific schedule, preferences, and the real data provided.`

// ServiceConfig holds configuration for the insights service.
type ServiceConfig struct {
	// Provider is the text-generation backend.
	Provider ChatProvider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service generates narrative insights for comparison results.
type Service struct {
	provider ChatProvider
	logger   zerolog.Logger
}

// NewService creates a new insights service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Generate builds the analysis prompt, runs the completion, and parses
// the structured sections. Any failure returns the placeholder payload.
func (s *Service) Generate(ctx context.Context, data *PromptData) *Insights {
	if s.provider == nil {
		return Placeholder()
	}

	response, err := s.provider.Complete(ctx, systemPrompt, BuildPrompt(data))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("insight generation failed, using placeholder")
		return Placeholder()
	}

	return Parse(response)
}

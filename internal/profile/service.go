package profile

import (
	"context"
	"errors"
	"time"
)

// Input carries a partial profile update. Nil fields are left unchanged.
type Input struct {
	WorkHours       *string
	WorkAddress     *string
	CommuteMode     *string
	SleepHours      *string
	NoisePreference *string
	Hobbies         []string
	Bedrooms        *int
}

// Service provides profile operations.
type Service struct {
	repo Repository
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves the user's profile. Users without a stored profile get
// the defaults so analyses always have a complete preference set.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return DefaultProfile(userID), nil
		}
		return nil, err
	}

	p.Normalize()
	return p, nil
}

// Upsert applies a partial update on top of the stored profile, creating
// it from defaults when absent.
func (s *Service) Upsert(ctx context.Context, userID string, input *Input) (*Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		p = DefaultProfile(userID)
	}

	if input.WorkHours != nil {
		p.WorkHours = *input.WorkHours
	}
	if input.WorkAddress != nil {
		p.WorkAddress = *input.WorkAddress
	}
	if input.CommuteMode != nil {
		p.CommuteMode = *input.CommuteMode
	}
	if input.SleepHours != nil {
		p.SleepHours = *input.SleepHours
	}
	if input.NoisePreference != nil {
		p.NoisePreference = *input.NoisePreference
	}
	if input.Hobbies != nil {
		p.Hobbies = input.Hobbies
	}
	if input.Bedrooms != nil {
		p.Bedrooms = *input.Bedrooms
	}

	p.Normalize()
	p.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a user's stored profile.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

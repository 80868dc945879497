package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/commute"
	"github.com/movewise/movewise/internal/cost"
	"github.com/movewise/movewise/internal/crime"
	"github.com/movewise/movewise/internal/insights"
	"github.com/movewise/movewise/internal/noise"
	"github.com/movewise/movewise/internal/profile"
	"github.com/movewise/movewise/internal/scoring"
	"github.com/movewise/movewise/pkg/geo"
)

// defaultListLimit bounds the list endpoint when the caller does not
// specify one.
const defaultListLimit = 10

// Geocoder resolves addresses and postal codes.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geo.Point, error)
	ResolvePostalCode(ctx context.Context, p geo.Point) string
}

// ProfileSource loads a user's preference profile.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

// CrimeComparer contrasts crime between two locations.
type CrimeComparer interface {
	Compare(ctx context.Context, currentLat, currentLon, destLat, destLon float64, schedule crime.Schedule) *crime.Comparison
}

// NoiseComparer contrasts noise between two locations.
type NoiseComparer interface {
	Compare(ctx context.Context, currentLat, currentLon, destLat, destLon float64, pref noise.Preference) *noise.Comparison
}

// CostComparer contrasts living costs between two postal codes.
type CostComparer interface {
	Compare(ctx context.Context, currentZip, destinationZip string, bedrooms int) *cost.Comparison
}

// AmenityComparer contrasts amenity access between two locations.
type AmenityComparer interface {
	Compare(ctx context.Context, currentLat, currentLon, destLat, destLon float64, hobbies []string) *amenity.Comparison
}

// CommuteEstimator estimates the commute from a location to a work address.
type CommuteEstimator interface {
	Estimate(ctx context.Context, originLat, originLon float64, workAddress string, mode commute.Mode) *commute.Info
}

// InsightGenerator turns the assembled data into narrative guidance.
type InsightGenerator interface {
	Generate(ctx context.Context, data *insights.PromptData) *insights.Insights
}

// ServiceConfig holds the orchestrator's dependencies.
type ServiceConfig struct {
	Geocoder Geocoder
	Profiles ProfileSource

	Crime     CrimeComparer
	Noise     NoiseComparer
	Cost      CostComparer
	Amenities AmenityComparer
	Commute   CommuteEstimator
	Insights  InsightGenerator

	Repository Repository
	Logger     zerolog.Logger
}

// Service runs comparisons and manages stored analyses.
type Service struct {
	geocoder  Geocoder
	profiles  ProfileSource
	crime     CrimeComparer
	noise     NoiseComparer
	cost      CostComparer
	amenities AmenityComparer
	commute   CommuteEstimator
	insights  InsightGenerator
	repo      Repository
	logger    zerolog.Logger
}

// NewService creates a new analysis service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		geocoder:  cfg.Geocoder,
		profiles:  cfg.Profiles,
		crime:     cfg.Crime,
		noise:     cfg.Noise,
		cost:      cfg.Cost,
		amenities: cfg.Amenities,
		commute:   cfg.Commute,
		insights:  cfg.Insights,
		repo:      cfg.Repository,
		logger:    cfg.Logger,
	}
}

// Create runs the full comparison pipeline for a request and persists the
// result. Domain providers degrade internally; only geocoding and
// persistence failures surface as errors.
func (s *Service) Create(ctx context.Context, userID string, req *Request) (*Result, error) {
	currentPoint, err := s.geocoder.Resolve(ctx, req.CurrentAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGeocoding, req.CurrentAddress)
	}
	destPoint, err := s.geocoder.Resolve(ctx, req.DestinationAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGeocoding, req.DestinationAddress)
	}

	currentZip := s.geocoder.ResolvePostalCode(ctx, currentPoint)
	destZip := s.geocoder.ResolvePostalCode(ctx, destPoint)

	prof, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("profile load failed, using defaults")
		prof = profile.DefaultProfile(userID)
	}

	schedule := crime.ParseSchedule(prof.WorkHours, prof.SleepHours)
	noisePref := noise.ParsePreference(prof.NoisePreference)
	mode := commute.ParseMode(prof.CommuteMode)

	// The five domain pipelines are independent; run them concurrently.
	// Each degrades to a fallback internally instead of failing.
	var (
		crimeCmp   *crime.Comparison
		noiseCmp   *noise.Comparison
		costCmp    *cost.Comparison
		amenityCmp *amenity.Comparison
		commuteNfo *commute.Info
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		crimeCmp = s.crime.Compare(ctx, currentPoint.Lat, currentPoint.Lon, destPoint.Lat, destPoint.Lon, schedule)
	}()
	go func() {
		defer wg.Done()
		noiseCmp = s.noise.Compare(ctx, currentPoint.Lat, currentPoint.Lon, destPoint.Lat, destPoint.Lon, noisePref)
	}()
	go func() {
		defer wg.Done()
		costCmp = s.cost.Compare(ctx, currentZip, destZip, prof.Bedrooms)
	}()
	go func() {
		defer wg.Done()
		amenityCmp = s.amenities.Compare(ctx, currentPoint.Lat, currentPoint.Lon, destPoint.Lat, destPoint.Lon, prof.Hobbies)
	}()
	go func() {
		defer wg.Done()
		commuteNfo = s.commute.Estimate(ctx, destPoint.Lat, destPoint.Lon, prof.WorkAddress, mode)
	}()
	wg.Wait()

	convenience := commute.ConvenienceScore(commuteNfo)
	currentInputs := scoring.Inputs{
		Safety:        crimeCmp.Current.SafetyScore,
		Affordability: costCmp.Current.AffordabilityScore,
		Environment:   noiseCmp.Current.Score,
		Lifestyle:     amenityCmp.Current.LifestyleScore,
		Convenience:   convenience,
	}
	destInputs := scoring.Inputs{
		Safety:        crimeCmp.Destination.SafetyScore,
		Affordability: costCmp.Destination.AffordabilityScore,
		Environment:   noiseCmp.Destination.Score,
		Lifestyle:     amenityCmp.Destination.LifestyleScore,
		Convenience:   convenience,
	}

	composite := scoring.Score(destInputs)
	deltas := scoring.Deltas(currentInputs, destInputs)

	generated := s.insights.Generate(ctx, &insights.PromptData{
		CurrentAddress:     req.CurrentAddress,
		DestinationAddress: req.DestinationAddress,
		Crime:              crimeCmp,
		Noise:              noiseCmp,
		Cost:               costCmp,
		Amenities:          amenityCmp,
		Commute:            commuteNfo,
		Preferences: &insights.Preferences{
			WorkHours:       prof.WorkHours,
			SleepHours:      prof.SleepHours,
			NoisePreference: prof.NoisePreference,
			Hobbies:         prof.Hobbies,
		},
		Scores: &composite,
	})

	result := &Result{
		ID:                 newAnalysisID(),
		CurrentAddress:     req.CurrentAddress,
		DestinationAddress: req.DestinationAddress,
		CurrentPoint:       currentPoint,
		DestinationPoint:   destPoint,
		Crime:              crimeCmp,
		Noise:              noiseCmp,
		Cost:               costCmp,
		Amenities:          amenityCmp,
		Commute:            commuteNfo,
		Scores:             &composite,
		Deltas:             deltas,
		Insights:           generated,
		CreatedAt:          time.Now().UTC(),
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode analysis payload: %w", err)
	}

	rec := &Record{
		ID:                 result.ID,
		UserID:             userID,
		CurrentAddress:     result.CurrentAddress,
		DestinationAddress: result.DestinationAddress,
		SafetyScore:        destInputs.Safety,
		AffordabilityScore: destInputs.Affordability,
		EnvironmentScore:   destInputs.Environment,
		LifestyleScore:     destInputs.Lifestyle,
		ConvenienceScore:   destInputs.Convenience,
		OverallScore:       composite.OverallScore,
		Grade:              composite.Grade,
		Payload:            payload,
		CreatedAt:          result.CreatedAt,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error().
			Err(err).
			Str("analysis_id", result.ID).
			Str("user_id", userID).
			Float64("overall_score", composite.OverallScore).
			Msg("analysis computed but could not be saved")
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err.Error())
	}

	s.logger.Info().
		Str("analysis_id", result.ID).
		Str("user_id", userID).
		Float64("overall_score", composite.OverallScore).
		Str("grade", composite.Grade).
		Msg("analysis created")

	return result, nil
}

// List returns the user's newest analyses.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, userID, limit)
}

// Get fetches one stored analysis and decodes its payload.
func (s *Service) Get(ctx context.Context, userID, id string) (*Result, error) {
	rec, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal(rec.Payload, &result); err != nil {
		return nil, fmt.Errorf("decode analysis payload: %w", err)
	}
	return &result, nil
}

// Delete removes one stored analysis.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func newAnalysisID() string {
	return "ana_" + uuid.New().String()[:22]
}

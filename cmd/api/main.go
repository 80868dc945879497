// Package main provides the entrypoint for the MoveWise API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/amenity/googleplaces"
	"github.com/movewise/movewise/internal/analysis"
	"github.com/movewise/movewise/internal/api"
	"github.com/movewise/movewise/internal/api/middleware"
	"github.com/movewise/movewise/internal/auth"
	"github.com/movewise/movewise/internal/commute"
	"github.com/movewise/movewise/internal/commute/distancematrix"
	"github.com/movewise/movewise/internal/cost"
	"github.com/movewise/movewise/internal/cost/hud"
	"github.com/movewise/movewise/internal/crime"
	"github.com/movewise/movewise/internal/crime/fbi"
	"github.com/movewise/movewise/internal/database"
	"github.com/movewise/movewise/internal/geocode"
	"github.com/movewise/movewise/internal/geocode/google"
	"github.com/movewise/movewise/internal/insights"
	"github.com/movewise/movewise/internal/insights/groq"
	"github.com/movewise/movewise/internal/noise"
	"github.com/movewise/movewise/internal/noise/overpass"
	"github.com/movewise/movewise/internal/profile"
	"github.com/movewise/movewise/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "movewise-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting MoveWise API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize auth service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	authService := auth.NewService(auth.Config{
		SigningKey: jwtSigningKey,
		Issuer:     envOrDefault("JWT_ISSUER", "https://api.movewise.io"),
		Audience:   envOrDefault("JWT_AUDIENCE", "movewise-api"),
	})
	log.Info().Msg("auth service initialized")

	// Provider clients. Missing keys degrade the matching domain to its
	// fallback path instead of blocking startup.
	mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if mapsKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set - geocoding will fail, places and commutes degrade")
	}

	geocodeService := geocode.NewService(geocode.ServiceConfig{
		Provider: google.NewClient(google.ClientConfig{APIKey: mapsKey}),
		Logger:   log,
	})

	var crimeProvider crime.Provider
	if fbiKey := os.Getenv("FBI_API_KEY"); fbiKey != "" {
		crimeProvider = fbi.NewClient(fbi.ClientConfig{APIKey: fbiKey})
	} else {
		log.Warn().Msg("FBI_API_KEY not set - crime analysis uses synthetic estimates")
	}
	crimeService := crime.NewService(crime.ServiceConfig{
		Provider: crimeProvider,
		Logger:   log,
	})

	noiseService := noise.NewService(noise.ServiceConfig{
		Roads:  overpass.NewClient(overpass.ClientConfig{}),
		Logger: log,
	})

	var rentProvider cost.RentProvider
	if hudToken := os.Getenv("HUD_API_TOKEN"); hudToken != "" {
		rentProvider = hud.NewClient(hud.ClientConfig{Token: hudToken})
	} else {
		log.Warn().Msg("HUD_API_TOKEN not set - cost analysis uses regional tables")
	}
	costService := cost.NewService(cost.ServiceConfig{
		Provider: rentProvider,
		Logger:   log,
	})

	var amenityProvider amenity.Provider
	if mapsKey != "" {
		amenityProvider = googleplaces.NewClient(googleplaces.ClientConfig{APIKey: mapsKey})
	}
	amenityService := amenity.NewService(amenity.ServiceConfig{
		Provider: amenityProvider,
		Logger:   log,
	})

	var commuteProvider commute.Provider
	if mapsKey != "" {
		commuteProvider = distancematrix.NewClient(distancematrix.ClientConfig{APIKey: mapsKey})
	}
	commuteService := commute.NewService(commute.ServiceConfig{
		Provider: commuteProvider,
		Logger:   log,
	})

	var chatProvider insights.ChatProvider
	if groqKey := os.Getenv("GROQ_API_KEY"); groqKey != "" {
		chatProvider = groq.NewClient(groq.ClientConfig{APIKey: groqKey})
	} else {
		log.Warn().Msg("GROQ_API_KEY not set - insights use the placeholder text")
	}
	insightsService := insights.NewService(insights.ServiceConfig{
		Provider: chatProvider,
		Logger:   log,
	})

	// Initialize profile repository and service
	profileService := profile.NewService(profile.NewPostgresRepository(pool))
	log.Info().Msg("profile service initialized")

	// Initialize analysis orchestrator
	analysisService := analysis.NewService(analysis.ServiceConfig{
		Geocoder:   geocodeService,
		Profiles:   profileService,
		Crime:      crimeService,
		Noise:      noiseService,
		Cost:       costService,
		Amenities:  amenityService,
		Commute:    commuteService,
		Insights:   insightsService,
		Repository: analysis.NewPostgresRepository(pool),
		Logger:     log,
	})
	log.Info().Msg("analysis service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		ServiceName:     serviceName,
		Metrics:         metrics,
		AuthService:     authService,
		AnalysisService: analysisService,
		ProfileService:  profileService,
		DB:              pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

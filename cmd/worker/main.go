// Package main provides the entrypoint for the MoveWise background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/movewise/movewise/internal/amenity"
	"github.com/movewise/movewise/internal/amenity/googleplaces"
	"github.com/movewise/movewise/internal/analysis"
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
	"github.com/movewise/movewise/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "movewise-worker").
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting MoveWise worker")

	// Worker also exposes a health endpoint for Cloud Run.
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	analysisService := buildAnalysisService(log, pool)

	job := worker.NewAnalysisJob(worker.AnalysisJobConfig{
		Config: worker.DefaultJobConfig(),
		Runner: analysisService,
		Logger: log,
	})

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Pub/Sub consumer
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "movewise-analysis-jobs"
	}

	if projectID == "" {
		log.Warn().Msg("PUBSUB_PROJECT_ID not set - worker idles without a job source")
	} else {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			Job:              job,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub receive stopped")
				cancel()
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

// buildAnalysisService wires the same comparison stack the API serves,
// backed by the shared database.
func buildAnalysisService(log zerolog.Logger, pool *pgxpool.Pool) *analysis.Service {
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
	}

	var rentProvider cost.RentProvider
	if hudToken := os.Getenv("HUD_API_TOKEN"); hudToken != "" {
		rentProvider = hud.NewClient(hud.ClientConfig{Token: hudToken})
	}

	var amenityProvider amenity.Provider
	var commuteProvider commute.Provider
	if mapsKey != "" {
		amenityProvider = googleplaces.NewClient(googleplaces.ClientConfig{APIKey: mapsKey})
		commuteProvider = distancematrix.NewClient(distancematrix.ClientConfig{APIKey: mapsKey})
	}

	var chatProvider insights.ChatProvider
	if groqKey := os.Getenv("GROQ_API_KEY"); groqKey != "" {
		chatProvider = groq.NewClient(groq.ClientConfig{APIKey: groqKey})
	}

	return analysis.NewService(analysis.ServiceConfig{
		Geocoder: geocodeService,
		Profiles: profile.NewService(profile.NewPostgresRepository(pool)),
		Crime: crime.NewService(crime.ServiceConfig{
			Provider: crimeProvider,
			Logger:   log,
		}),
		Noise: noise.NewService(noise.ServiceConfig{
			Roads:  overpass.NewClient(overpass.ClientConfig{}),
			Logger: log,
		}),
		Cost: cost.NewService(cost.ServiceConfig{
			Provider: rentProvider,
			Logger:   log,
		}),
		Amenities: amenity.NewService(amenity.ServiceConfig{
			Provider: amenityProvider,
			Logger:   log,
		}),
		Commute: commute.NewService(commute.ServiceConfig{
			Provider: commuteProvider,
			Logger:   log,
		}),
		Insights: insights.NewService(insights.ServiceConfig{
			Provider: chatProvider,
			Logger:   log,
		}),
		Repository: analysis.NewPostgresRepository(pool),
		Logger:     log,
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/eventboard-be/internal/analytics"
	"github.com/isdelr/eventboard-be/internal/api"
	"github.com/isdelr/eventboard-be/internal/auth"
	"github.com/isdelr/eventboard-be/internal/config"
	"github.com/isdelr/eventboard-be/internal/database"
	"github.com/isdelr/eventboard-be/internal/logger"
	"github.com/isdelr/eventboard-be/internal/monitoring"
	"github.com/isdelr/eventboard-be/internal/services"
	"github.com/isdelr/eventboard-be/internal/storage"
	"github.com/isdelr/eventboard-be/internal/weather"
	"github.com/isdelr/eventboard-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	if cfg.ShareSecret == "" {
		log.Warn().Msg("SHARE_SECRET is not set; share links will not survive a restart")
		cfg.ShareSecret = auth.RandomSecret()
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up event storage
	var storeOpts []storage.Option
	if cfg.SeedSamples {
		storeOpts = append(storeOpts, storage.WithSeed(storage.SampleEvents(time.Now())))
	}
	store := storage.NewFileStore(cfg.DataFile, storeOpts...)
	if _, err := store.List(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataFile).Msg("Failed to open event data file")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tracker := analytics.NewTracker(database.NewKVStore(db), time.Now)
	reporter := analytics.NewReporter(tracker, nil)
	signer := auth.NewShareSigner(cfg.ShareSecret, cfg.ShareTokenTTL)
	eventService := services.NewEventService(store, hub)
	analyticsService := services.NewAnalyticsService(store, tracker, reporter, signer, weather.NewMockForecaster(), cfg.PublicBaseURL)

	// Set up and run the analytics housekeeping
	scheduler, err := monitoring.NewScheduler(analyticsService, cfg.ReconcileSchedule, cfg.ActivityRetention())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	scheduler.Run()

	statUpdater := monitoring.NewStatUpdater(analyticsService, hub, cfg.AnalyticsPushInterval)
	go statUpdater.Run()

	// Set up router
	router := api.NewRouter(hub, eventService, analyticsService, api.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultRadiusKm: cfg.DefaultRadiusKm,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("data_file", cfg.DataFile).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scheduler.Stop(ctx)
	statUpdater.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}

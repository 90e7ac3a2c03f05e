package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/api"
	"github.com/andresuchdata/wastewise/backend-go/internal/cache"
	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/metrics"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/andresuchdata/wastewise/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, analytics cache disabled")
		analyticsCache = cache.NewNoopAnalyticsCache()
	}
	defer func() {
		if err := analyticsCache.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to close analytics cache")
		}
	}()

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
	}

	sources := engine.SourcesFor(cfg.Engine.Seed)
	clock := engine.SystemClock{}
	if cfg.Engine.Seed != 0 {
		logger.Log.Info().Uint64("seed", cfg.Engine.Seed).Msg("Using seeded random source")
	}

	services := &api.Services{
		Forecast: service.NewForecastService(sources, clock, recorder),
		Analytics: service.NewAnalyticsService(service.AnalyticsOptions{
			Cache:     analyticsCache,
			Sources:   sources,
			Clock:     clock,
			Report:    cfg.Report,
			CostPerKg: cfg.Engine.CostPerKg,
			Metrics:   recorder,
		}),
	}

	router := api.NewRouter(services, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Defaults:       cfg.Engine,
		Metrics:        recorder,
		MetricsPath:    cfg.Metrics.Path,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// in-flight requests get 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

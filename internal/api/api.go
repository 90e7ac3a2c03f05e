package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/api/handlers"
	"github.com/andresuchdata/wastewise/backend-go/internal/api/middleware"
	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/metrics"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Forecast  *service.ForecastService
	Analytics *service.AnalyticsService
}

type Options struct {
	AllowedOrigins []string
	Defaults       config.EngineConfig
	Metrics        *metrics.Recorder
	// MetricsPath is left unrouted when empty.
	MetricsPath string
}

func NewRouter(services *Services, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(opts.Metrics))
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsPath != "" && opts.Metrics != nil {
		router.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Forecast != nil {
			predictionHandler := handlers.NewPredictionHandler(services.Forecast, opts.Defaults)
			apiGroup.POST("/ml-models", predictionHandler.Predict)
			apiGroup.POST("/plan", predictionHandler.Plan)
			apiGroup.POST("/impact", predictionHandler.Impact)
			apiGroup.POST("/inventory/efficiency", predictionHandler.Efficiency)
		}

		if services.Analytics != nil {
			var clock engine.Clock
			if services.Forecast != nil {
				clock = services.Forecast
			}
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics, clock)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("", analyticsHandler.GetAnalytics)
				analyticsGroup.DELETE("/cache", analyticsHandler.InvalidateCache)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

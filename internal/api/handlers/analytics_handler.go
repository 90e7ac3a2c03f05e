package handlers

import (
	"fmt"
	"net/http"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	clock     engine.Clock
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, clock engine.Clock) *AnalyticsHandler {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &AnalyticsHandler{analytics: analytics, clock: clock}
}

// GetAnalytics serves GET /api/v1/analytics?dataType=&timeRange=.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	dataType, ok := domain.ParseDataType(c.DefaultQuery("dataType", string(domain.DataTypeAll)))
	if !ok {
		failure(c, fmt.Errorf("%w: unknown dataType %q", ErrInvalidInput, c.Query("dataType")))
		return
	}

	timeRange, ok := domain.ParseTimeRange(c.DefaultQuery("timeRange", string(domain.TimeRangeYear)))
	if !ok {
		failure(c, fmt.Errorf("%w: unknown timeRange %q", ErrInvalidInput, c.Query("timeRange")))
		return
	}

	report, err := h.analytics.GetReport(c.Request.Context(), dataType, timeRange)
	if err != nil {
		failure(c, err)
		return
	}

	success(c, h.clock.Now(), "data", report)
}

// InvalidateCache drops every cached analytics report.
func (h *AnalyticsHandler) InvalidateCache(c *gin.Context) {
	if err := h.analytics.InvalidateCache(c.Request.Context()); err != nil {
		failure(c, err)
		return
	}

	log.Info().Msg("analytics cache invalidated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "analytics cache invalidated"})
}

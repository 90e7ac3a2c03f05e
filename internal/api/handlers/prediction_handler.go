package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

type PredictionHandler struct {
	forecast *service.ForecastService
	defaults config.EngineConfig
}

func NewPredictionHandler(forecast *service.ForecastService, defaults config.EngineConfig) *PredictionHandler {
	return &PredictionHandler{forecast: forecast, defaults: defaults}
}

// Predict dispatches on modelType to the demand, shelf-life or inventory model.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req predictionRequest
	if err := h.bind(c, &req); err != nil {
		failure(c, err)
		return
	}

	now := h.forecast.Now()

	switch req.ModelType {
	case service.ModelDemand:
		warnUnknownCategory(c, req.category())
		demandReq, err := req.demandRequest(h.defaults, now)
		if err != nil {
			failure(c, err)
			return
		}
		success(c, now, "result", newDemandResponse(h.forecast.PredictDemand(demandReq)))

	case service.ModelShelfLife:
		warnUnknownCategory(c, req.category())
		success(c, now, "result", newShelfLifeResponse(h.forecast.PredictShelfLife(req.shelfLifeRequest(h.defaults))))

	case service.ModelInventory:
		success(c, now, "result", newInventoryResponse(h.forecast.OptimizeInventory(req.inventoryRequest(h.defaults))))

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid model type",
			"message": fmt.Sprintf("modelType %q must be one of demand, shelf-life, inventory", req.ModelType),
		})
	}
}

// Plan runs demand, shelf life, inventory and efficiency for one product line.
func (h *PredictionHandler) Plan(c *gin.Context) {
	var req predictionRequest
	if err := h.bind(c, &req); err != nil {
		failure(c, err)
		return
	}

	warnUnknownCategory(c, req.category())

	now := h.forecast.Now()
	planReq, err := req.planRequest(h.defaults, now)
	if err != nil {
		failure(c, err)
		return
	}

	result, err := h.forecast.Plan(c.Request.Context(), planReq)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, now, "result", result)
}

func (h *PredictionHandler) Impact(c *gin.Context) {
	var req impactRequest
	if err := h.bind(c, &req); err != nil {
		failure(c, err)
		return
	}

	impact, sdg := h.forecast.Impact(req.WasteReduction.or(0), req.FoodRedirected.or(0))
	success(c, h.forecast.Now(), "result", impactResponse{Impact: impact, SDG: sdg})
}

func (h *PredictionHandler) Efficiency(c *gin.Context) {
	var req efficiencyRequest
	if err := h.bind(c, &req); err != nil {
		failure(c, err)
		return
	}

	result := h.forecast.AnalyzeEfficiency(req.CurrentStock.or(0), req.OptimalStock.or(0))
	success(c, h.forecast.Now(), "result", result)
}

func (h *PredictionHandler) bind(c *gin.Context, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: read body: %v", ErrInvalidInput, err)
	}
	return decodeBody(body, dst)
}

// warnUnknownCategory notes categories that fall back to the default profile.
func warnUnknownCategory(c *gin.Context, category domain.Category) {
	if category.IsKnown() {
		return
	}
	log.Warn().
		Str("category", string(category)).
		Str("path", c.FullPath()).
		Msg("unknown category, using default profile")
}

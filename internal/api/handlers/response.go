package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func timestamp(now time.Time) string {
	return now.UTC().Format(timestampLayout)
}

func success(c *gin.Context, now time.Time, key string, payload any) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		key:         payload,
		"timestamp": timestamp(now),
	})
}

// failure writes {error, message}. Oversized bodies map to 413, other input
// errors to 400, anything else to 500.
func failure(c *gin.Context, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("rejected request")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large", "message": err.Error()})
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("rejected request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("failed to process request")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request", "message": err.Error()})
}

type demandResponse struct {
	Prediction         int      `json:"prediction"`
	ConfidenceInterval int      `json:"confidenceInterval"`
	Factors            []string `json:"factors"`
}

func newDemandResponse(r domain.DemandPredictionResult) demandResponse {
	return demandResponse{
		Prediction:         r.PredictedDemand,
		ConfidenceInterval: r.ConfidenceInterval,
		Factors:            r.ContributingFactors,
	}
}

type shelfLifeResponse struct {
	Prediction         float64                  `json:"prediction"`
	ConfidenceInterval float64                  `json:"confidenceInterval"`
	OptimalConditions  domain.StorageConditions `json:"optimalConditions"`
}

func newShelfLifeResponse(r domain.ShelfLifeResult) shelfLifeResponse {
	return shelfLifeResponse{
		Prediction:         r.PredictedDays,
		ConfidenceInterval: r.ConfidenceIntervalDays,
		OptimalConditions:  r.OptimalConditions,
	}
}

type inventoryResponse struct {
	Optimal         int `json:"optimal"`
	Min             int `json:"min"`
	Max             int `json:"max"`
	ReorderPoint    int `json:"reorderPoint"`
	ReorderQuantity int `json:"reorderQuantity"`
}

func newInventoryResponse(r domain.InventoryOptimizationResult) inventoryResponse {
	return inventoryResponse{
		Optimal:         r.OptimalStock,
		Min:             r.MinStock,
		Max:             r.MaxStock,
		ReorderPoint:    r.ReorderPoint,
		ReorderQuantity: r.ReorderQuantity,
	}
}

type impactResponse struct {
	Impact domain.ImpactMetrics   `json:"impact"`
	SDG    domain.SDGContribution `json:"sdg"`
}

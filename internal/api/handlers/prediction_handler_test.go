package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPredictionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPredictionHandler(service.NewForecastService(engine.SeededSources(5), nil, nil), defaults)

	router := gin.New()
	router.POST("/ml-models", h.Predict)
	router.POST("/plan", h.Plan)
	return router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// captureLog points the global logger at a buffer for the duration of t.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})
	return &buf
}

func TestPredictRejectsOversizedBody(t *testing.T) {
	router := newPredictionRouter()

	body := `{"modelType":"demand","productName":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := post(router, "/ml-models", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request too large")
}

func TestPredictWarnsOnUnknownCategory(t *testing.T) {
	router := newPredictionRouter()

	tests := []struct {
		name     string
		path     string
		body     string
		wantWarn bool
	}{
		{name: "unknown demand category", path: "/ml-models", body: `{"modelType":"demand","category":"frozen"}`, wantWarn: true},
		{name: "unknown shelf-life category", path: "/ml-models", body: `{"modelType":"shelf-life","category":"frozen"}`, wantWarn: true},
		{name: "unknown plan category", path: "/plan", body: `{"category":"frozen"}`, wantWarn: true},
		{name: "known category", path: "/ml-models", body: `{"modelType":"demand","category":"dairy"}`},
		{name: "inventory ignores category", path: "/ml-models", body: `{"modelType":"inventory"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			rec := post(router, tt.path, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			if tt.wantWarn {
				assert.Contains(t, buf.String(), "unknown category, using default profile")
				assert.Contains(t, buf.String(), `"category":"frozen"`)
			} else {
				assert.NotContains(t, buf.String(), "unknown category")
			}
		})
	}
}

func TestPredictInventoryHugeDemandStaysNonNegative(t *testing.T) {
	router := newPredictionRouter()

	rec := post(router, "/ml-models", `{"modelType":"inventory","demandPrediction":1e300}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Result inventoryResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, math.MaxInt, payload.Result.Optimal)
	assert.Equal(t, math.MaxInt, payload.Result.Min)
	assert.Equal(t, math.MaxInt, payload.Result.Max)
	assert.Equal(t, 0, payload.Result.ReorderQuantity)
}

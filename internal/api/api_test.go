package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/api/middleware"
	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/metrics"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var testNow = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC)

var testDefaults = config.EngineConfig{
	DefaultLocation:         "store1",
	DefaultTemperatureC:     4,
	DefaultLeadTimeDays:     3,
	DefaultCurrentStock:     100,
	DefaultShelfLifeDays:    7,
	DefaultDemandPrediction: 150,
	CostPerKg:               4.5,
}

func newTestRouter(recorder *metrics.Recorder) *gin.Engine {
	clock := engine.FixedClock(testNow)
	sources := engine.SeededSources(3)

	return NewRouter(&Services{
		Forecast: service.NewForecastService(sources, clock, recorder),
		Analytics: service.NewAnalyticsService(service.AnalyticsOptions{
			Sources: sources,
			Clock:   clock,
			Report: config.ReportConfig{
				WasteReductionKg: 5000,
				FoodRedirectedKg: 2450,
				EnergySavedKWh:   45000,
			},
			CostPerKg: testDefaults.CostPerKg,
			Metrics:   recorder,
		}),
	}, Options{
		Defaults:    testDefaults,
		Metrics:     recorder,
		MetricsPath: "/metrics",
	})
}

func do(router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
	}
	return rec, payload
}

var _ = Describe("Router", func() {
	var (
		router   *gin.Engine
		recorder *metrics.Recorder
	)

	BeforeEach(func() {
		recorder = metrics.NewRecorder()
		router = newTestRouter(recorder)
	})

	Describe("GET /health", func() {
		It("reports ok with a request id", func() {
			rec, payload := do(router, http.MethodGet, "/health", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload).To(HaveKeyWithValue("status", "ok"))
			Expect(rec.Header().Get(middleware.RequestIDHeader)).NotTo(BeEmpty())
		})

		It("echoes the caller's request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(middleware.RequestIDHeader, "abc-123")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Header().Get(middleware.RequestIDHeader)).To(Equal("abc-123"))
		})
	})

	Describe("POST /api/v1/ml-models", func() {
		It("predicts demand", func() {
			rec, payload := do(router, http.MethodPost, "/api/v1/ml-models",
				`{"modelType":"demand","productCategory":"dairy","date":"2024-06-15","location":"warehouse"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload).To(HaveKeyWithValue("success", true))
			Expect(payload).To(HaveKeyWithValue("timestamp", "2024-06-15T09:30:00.000Z"))

			result := payload["result"].(map[string]any)
			Expect(result["prediction"]).To(BeNumerically(">=", 335))
			Expect(result["prediction"]).To(BeNumerically("<=", 355))
			Expect(result["factors"]).To(ContainElement("Weekend demand increase"))
			Expect(result["factors"]).To(ContainElement("Location factor: warehouse"))
		})

		It("defaults the date to today and the location to store1", func() {
			_, payload := do(router, http.MethodPost, "/api/v1/ml-models", `{"modelType":"demand","category":"fruits"}`)
			result := payload["result"].(map[string]any)
			Expect(result["factors"]).To(ContainElements("Weekend demand increase", "Location factor: store1"))
		})

		It("accepts numeric strings for shelf life", func() {
			rec, payload := do(router, http.MethodPost, "/api/v1/ml-models",
				`{"modelType":"shelf-life","productCategory":"bakery","temperature":"20"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			result := payload["result"].(map[string]any)
			Expect(result["prediction"]).To(BeNumerically("~", 3, 0.31))
			Expect(result["optimalConditions"]).To(Equal(map[string]any{"temperature": 20.0, "humidity": 70.0}))
		})

		It("optimizes inventory with boundary defaults", func() {
			rec, payload := do(router, http.MethodPost, "/api/v1/ml-models", `{"modelType":"inventory","leadTime":"3"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload["result"]).To(Equal(map[string]any{
				"optimal":         83.0,
				"min":             19.0,
				"max":             100.0,
				"reorderPoint":    74.0,
				"reorderQuantity": 64.0,
			}))
		})

		It("rejects an unknown model type", func() {
			rec, payload := do(router, http.MethodPost, "/api/v1/ml-models", `{"modelType":"pricing"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(payload).To(HaveKeyWithValue("error", "Invalid model type"))
			Expect(payload).To(HaveKey("message"))
		})

		DescribeTable("rejects malformed input",
			func(body string) {
				rec, payload := do(router, http.MethodPost, "/api/v1/ml-models", body)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(payload).To(HaveKey("error"))
				Expect(payload).To(HaveKey("message"))
			},
			Entry("broken JSON", `{"modelType":`),
			Entry("bad date", `{"modelType":"demand","date":"15/06/2024"}`),
			Entry("non-numeric temperature", `{"modelType":"shelf-life","temperature":"warm"}`),
			Entry("NaN lead time", `{"modelType":"inventory","leadTime":"NaN"}`),
		)
	})

	Describe("POST /api/v1/plan", func() {
		It("chains the models", func() {
			rec, payload := do(router, http.MethodPost, "/api/v1/plan",
				`{"category":"meat","date":"2024-06-12","location":"store3","temperature":2,"leadTime":2,"currentStock":40}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			result := payload["result"].(map[string]any)
			Expect(result).To(HaveKeyWithValue("targetDate", "2024-06-12"))
			Expect(result).To(HaveKeyWithValue("category", "meat"))
			Expect(result).To(HaveKey("demand"))
			Expect(result).To(HaveKey("shelfLife"))
			Expect(result).To(HaveKey("efficiency"))

			inventory := result["inventory"].(map[string]any)
			Expect(inventory["minStock"]).To(BeNumerically("<=", inventory["optimalStock"]))
			Expect(inventory["optimalStock"]).To(BeNumerically("<=", inventory["maxStock"]))
		})
	})

	Describe("POST /api/v1/impact", func() {
		It("scores environmental and SDG impact", func() {
			rec, payload := do(router, http.MethodPost, "/api/v1/impact", `{"wasteReduction":5000,"foodRedirected":"2450"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			result := payload["result"].(map[string]any)
			Expect(result["impact"]).To(Equal(map[string]any{
				"co2Reduction": 12500.0,
				"waterSaved":   5000000.0,
				"landSaved":    2500.0,
			}))
			Expect(result["sdg"]).To(Equal(map[string]any{
				"mealsProvided": 4900.0,
				"sdg2Score":     49.0,
				"sdg12Score":    50.0,
			}))
		})
	})

	Describe("POST /api/v1/inventory/efficiency", func() {
		It("rates understocked inventory", func() {
			_, payload := do(router, http.MethodPost, "/api/v1/inventory/efficiency", `{"currentStock":50,"optimalStock":100}`)
			Expect(payload["result"]).To(Equal(map[string]any{
				"efficiency":     50.0,
				"status":         "Understocked",
				"recommendation": "Increase stock by 50 units",
			}))
		})
	})

	Describe("GET /api/v1/analytics", func() {
		It("returns every section by default", func() {
			rec, payload := do(router, http.MethodGet, "/api/v1/analytics", "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			data := payload["data"].(map[string]any)
			Expect(data).To(HaveKeyWithValue("dataType", "all"))
			Expect(data).To(HaveKeyWithValue("timeRange", "year"))
			Expect(data).To(HaveKey("wasteReduction"))
			Expect(data).To(HaveKey("costSavings"))
			Expect(data).To(HaveKey("environmental"))
			Expect(data).To(HaveKey("sdgImpact"))

			series := data["wasteReduction"].(map[string]any)["series"].([]any)
			Expect(series).To(HaveLen(12))
		})

		It("returns only the selected section", func() {
			_, payload := do(router, http.MethodGet, "/api/v1/analytics?dataType=costSavings&timeRange=week", "")
			data := payload["data"].(map[string]any)
			Expect(data).To(HaveKey("costSavings"))
			Expect(data).NotTo(HaveKey("wasteReduction"))
			Expect(data["costSavings"].(map[string]any)).To(HaveKeyWithValue("projectedSavings", 22500.0))
		})

		It("rejects unknown selectors", func() {
			rec, _ := do(router, http.MethodGet, "/api/v1/analytics?timeRange=decade", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			rec, _ = do(router, http.MethodGet, "/api/v1/analytics?dataType=revenue", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("invalidates the cache", func() {
			rec, payload := do(router, http.MethodDelete, "/api/v1/analytics/cache", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(payload).To(HaveKeyWithValue("success", true))
		})
	})

	Describe("GET /metrics", func() {
		It("exposes request and prediction counters", func() {
			do(router, http.MethodPost, "/api/v1/ml-models", `{"modelType":"demand","category":"dairy"}`)

			rec, _ := do(router, http.MethodGet, "/metrics", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`wastewise_predictions_total{category="dairy",model="demand"} 1`))
			Expect(rec.Body.String()).To(ContainSubstring(`wastewise_http_requests_total{method="POST",route="/api/v1/ml-models",status="200"} 1`))
		})
	})
})

var _ = Describe("normalizeAllowedOrigins", func() {
	It("splits comma lists and detects wildcards", func() {
		origins, allowAll := normalizeAllowedOrigins([]string{"https://a.example, https://b.example", " ", "*"})
		Expect(origins).To(Equal([]string{"https://a.example", "https://b.example"}))
		Expect(allowAll).To(BeTrue())
	})
})

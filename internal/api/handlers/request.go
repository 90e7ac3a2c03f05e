package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
)

// ErrInvalidInput marks request bodies that cannot be turned into a model input.
var ErrInvalidInput = errors.New("invalid input")

// ErrBodyTooLarge is an ErrInvalidInput for bodies over the size limit.
var ErrBodyTooLarge = fmt.Errorf("%w: request body too large", ErrInvalidInput)

const dateLayout = time.DateOnly

// flexNumber accepts a JSON number or a numeric string. Null and "" leave it unset.
type flexNumber struct {
	value float64
	set   bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = flexNumber{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = flexNumber{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q is not a finite number", ErrInvalidInput, raw)
	}
	*n = flexNumber{value: v, set: true}
	return nil
}

func (n flexNumber) or(fallback float64) float64 {
	if !n.set {
		return fallback
	}
	return n.value
}

func (n flexNumber) ptr() *float64 {
	if !n.set {
		return nil
	}
	v := n.value
	return &v
}

// predictionRequest is the body of POST /api/v1/ml-models and /api/v1/plan.
type predictionRequest struct {
	ModelType        string     `json:"modelType"`
	ProductCategory  string     `json:"productCategory"`
	Category         string     `json:"category"`
	ProductName      string     `json:"productName"`
	Date             string     `json:"date"`
	Location         string     `json:"location"`
	Temperature      flexNumber `json:"temperature"`
	Humidity         flexNumber `json:"humidity"`
	Packaging        string     `json:"packaging"`
	LeadTime         flexNumber `json:"leadTime"`
	CurrentStock     flexNumber `json:"currentStock"`
	ShelfLife        flexNumber `json:"shelfLife"`
	DemandPrediction flexNumber `json:"demandPrediction"`
}

func (r predictionRequest) category() domain.Category {
	if strings.TrimSpace(r.ProductCategory) != "" {
		return domain.ParseCategory(r.ProductCategory)
	}
	return domain.ParseCategory(r.Category)
}

func (r predictionRequest) location(defaults config.EngineConfig) domain.Location {
	if strings.TrimSpace(r.Location) == "" {
		return domain.ParseLocation(defaults.DefaultLocation)
	}
	return domain.ParseLocation(r.Location)
}

// targetDate parses the request date, falling back to today.
func (r predictionRequest) targetDate(now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return now, nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return date, nil
}

func (r predictionRequest) demandRequest(defaults config.EngineConfig, now time.Time) (domain.DemandPredictionRequest, error) {
	date, err := r.targetDate(now)
	if err != nil {
		return domain.DemandPredictionRequest{}, err
	}
	return domain.DemandPredictionRequest{
		Category:    r.category(),
		ProductName: r.ProductName,
		TargetDate:  date,
		Location:    r.location(defaults),
	}, nil
}

func (r predictionRequest) shelfLifeRequest(defaults config.EngineConfig) domain.ShelfLifeRequest {
	return domain.ShelfLifeRequest{
		Category:            r.category(),
		ProductName:         r.ProductName,
		StorageTemperatureC: r.Temperature.or(defaults.DefaultTemperatureC),
		HumidityPct:         r.Humidity.ptr(),
		PackagingType:       r.Packaging,
	}
}

func (r predictionRequest) inventoryRequest(defaults config.EngineConfig) domain.InventoryOptimizationRequest {
	return domain.InventoryOptimizationRequest{
		Category:         r.category(),
		CurrentStock:     r.CurrentStock.or(float64(defaults.DefaultCurrentStock)),
		LeadTimeDays:     r.LeadTime.or(float64(defaults.DefaultLeadTimeDays)),
		ShelfLifeDays:    r.ShelfLife.or(defaults.DefaultShelfLifeDays),
		DemandPrediction: r.DemandPrediction.or(defaults.DefaultDemandPrediction),
	}
}

func (r predictionRequest) planRequest(defaults config.EngineConfig, now time.Time) (domain.PlanRequest, error) {
	date, err := r.targetDate(now)
	if err != nil {
		return domain.PlanRequest{}, err
	}
	return domain.PlanRequest{
		Category:            r.category(),
		ProductName:         r.ProductName,
		TargetDate:          date,
		Location:            r.location(defaults),
		StorageTemperatureC: r.Temperature.or(defaults.DefaultTemperatureC),
		LeadTimeDays:        r.LeadTime.or(float64(defaults.DefaultLeadTimeDays)),
		CurrentStock:        r.CurrentStock.or(float64(defaults.DefaultCurrentStock)),
	}, nil
}

type impactRequest struct {
	WasteReduction flexNumber `json:"wasteReduction"`
	FoodRedirected flexNumber `json:"foodRedirected"`
}

type efficiencyRequest struct {
	CurrentStock flexNumber `json:"currentStock"`
	OptimalStock flexNumber `json:"optimalStock"`
}

// decodeBody decodes a JSON body, treating an empty body as "{}".
func decodeBody(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	ModelDemand    = "demand"
	ModelShelfLife = "shelf-life"
	ModelInventory = "inventory"
	ModelPlan      = "plan"
)

// ForecastService runs the predictors with an injected clock and random
// source. It holds no mutable state and is safe for concurrent use.
type ForecastService struct {
	sources   engine.SourceFactory
	clock     engine.Clock
	optimizer *engine.InventoryOptimizer
	metrics   *metrics.Recorder
}

func NewForecastService(sources engine.SourceFactory, clock engine.Clock, recorder *metrics.Recorder) *ForecastService {
	if sources == nil {
		sources = engine.EntropySources()
	}
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &ForecastService{
		sources:   sources,
		clock:     clock,
		optimizer: engine.NewInventoryOptimizer(),
		metrics:   recorder,
	}
}

// Now returns the service clock's current time.
func (s *ForecastService) Now() time.Time {
	return s.clock.Now()
}

func (s *ForecastService) PredictDemand(req domain.DemandPredictionRequest) domain.DemandPredictionResult {
	start := time.Now()
	if req.TargetDate.IsZero() {
		req.TargetDate = s.clock.Now()
	}

	result := engine.PredictDemand(req, s.sources())
	s.metrics.ObservePrediction(ModelDemand, string(req.Category), time.Since(start))

	log.Debug().
		Str("category", string(req.Category)).
		Str("location", string(req.Location)).
		Str("date", req.TargetDate.Format(time.DateOnly)).
		Int("predicted_demand", result.PredictedDemand).
		Msg("demand predicted")

	return result
}

func (s *ForecastService) PredictShelfLife(req domain.ShelfLifeRequest) domain.ShelfLifeResult {
	start := time.Now()
	result := engine.PredictShelfLife(req, s.sources())
	s.metrics.ObservePrediction(ModelShelfLife, string(req.Category), time.Since(start))

	log.Debug().
		Str("category", string(req.Category)).
		Float64("temperature_c", req.StorageTemperatureC).
		Float64("predicted_days", result.PredictedDays).
		Msg("shelf life predicted")

	return result
}

func (s *ForecastService) OptimizeInventory(req domain.InventoryOptimizationRequest) domain.InventoryOptimizationResult {
	start := time.Now()
	result := s.optimizer.Optimize(req)
	s.metrics.ObservePrediction(ModelInventory, string(req.Category), time.Since(start))

	log.Debug().
		Float64("demand_prediction", req.DemandPrediction).
		Float64("lead_time_days", req.LeadTimeDays).
		Float64("shelf_life_days", req.ShelfLifeDays).
		Int("optimal_stock", result.OptimalStock).
		Msg("inventory optimized")

	return result
}

// AnalyzeEfficiency rates current stock against the optimal level.
func (s *ForecastService) AnalyzeEfficiency(currentStock, optimalStock float64) domain.InventoryEfficiency {
	return engine.AnalyzeInventoryEfficiency(currentStock, optimalStock)
}

// Impact converts avoided and redirected waste into environmental and SDG metrics.
func (s *ForecastService) Impact(wasteReductionKg, foodRedirectedKg float64) (domain.ImpactMetrics, domain.SDGContribution) {
	return engine.CalculateEnvironmentalImpact(wasteReductionKg),
		engine.CalculateSDGContribution(wasteReductionKg, foodRedirectedKg)
}

// Plan predicts demand and shelf life concurrently, feeds both into the
// optimizer and rates the current stock against the resulting optimum.
func (s *ForecastService) Plan(ctx context.Context, req domain.PlanRequest) (*domain.PlanResult, error) {
	if req.TargetDate.IsZero() {
		req.TargetDate = s.clock.Now()
	}

	var (
		demand    domain.DemandPredictionResult
		shelfLife domain.ShelfLifeResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		demand = s.PredictDemand(domain.DemandPredictionRequest{
			Category:    req.Category,
			ProductName: req.ProductName,
			TargetDate:  req.TargetDate,
			Location:    req.Location,
		})
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		shelfLife = s.PredictShelfLife(domain.ShelfLifeRequest{
			Category:            req.Category,
			ProductName:         req.ProductName,
			StorageTemperatureC: req.StorageTemperatureC,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan %s/%s: %w", req.Category, req.Location, err)
	}

	inventory := s.OptimizeInventory(domain.InventoryOptimizationRequest{
		Category:         req.Category,
		CurrentStock:     req.CurrentStock,
		LeadTimeDays:     req.LeadTimeDays,
		ShelfLifeDays:    shelfLife.PredictedDays,
		DemandPrediction: float64(demand.PredictedDemand),
	})

	return &domain.PlanResult{
		Category:   req.Category,
		Location:   req.Location,
		TargetDate: req.TargetDate.Format(time.DateOnly),
		Demand:     demand,
		ShelfLife:  shelfLife,
		Inventory:  inventory,
		Efficiency: s.AnalyzeEfficiency(req.CurrentStock, float64(inventory.OptimalStock)),
	}, nil
}

// PlanBatch plans every request with at most workers running at once. Results
// keep the order of reqs. The first failure cancels the remaining work.
func (s *ForecastService) PlanBatch(ctx context.Context, reqs []domain.PlanRequest, workers int) ([]domain.PlanResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]domain.PlanResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := s.Plan(gctx, req)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().Int("rows", len(reqs)).Int("workers", workers).Msg("batch plan completed")
	return results, nil
}

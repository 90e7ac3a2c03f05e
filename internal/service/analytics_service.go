package service

import (
	"context"

	"github.com/andresuchdata/wastewise/backend-go/internal/cache"
	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/metrics"
	"github.com/rs/zerolog/log"
)

type AnalyticsService struct {
	cache     cache.AnalyticsCache
	sources   engine.SourceFactory
	clock     engine.Clock
	report    config.ReportConfig
	costPerKg float64
	metrics   *metrics.Recorder
}

type AnalyticsOptions struct {
	Cache     cache.AnalyticsCache
	Sources   engine.SourceFactory
	Clock     engine.Clock
	Report    config.ReportConfig
	CostPerKg float64
	Metrics   *metrics.Recorder
}

func NewAnalyticsService(opts AnalyticsOptions) *AnalyticsService {
	if opts.Cache == nil {
		opts.Cache = cache.NewNoopAnalyticsCache()
	}
	if opts.Sources == nil {
		opts.Sources = engine.EntropySources()
	}
	if opts.Clock == nil {
		opts.Clock = engine.SystemClock{}
	}
	return &AnalyticsService{
		cache:     opts.Cache,
		sources:   opts.Sources,
		clock:     opts.Clock,
		report:    opts.Report,
		costPerKg: opts.CostPerKg,
		metrics:   opts.Metrics,
	}
}

// GetReport returns the sections selected by dataType, serving from cache
// when possible. Cache failures are logged and never fail the request.
func (s *AnalyticsService) GetReport(ctx context.Context, dataType domain.DataType, timeRange domain.TimeRange) (*domain.AnalyticsReport, error) {
	if report, ok, err := s.cache.GetReport(ctx, dataType, timeRange); err == nil && ok {
		s.metrics.ObserveCacheLookup(true)
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("analytics: cache get report failed")
	}
	s.metrics.ObserveCacheLookup(false)

	report := s.BuildReport(dataType, timeRange)

	if err := s.cache.SetReport(ctx, report); err != nil {
		log.Warn().Err(err).Msg("analytics: cache set report failed")
	}

	return report, nil
}

// BuildReport assembles a fresh report without consulting the cache.
func (s *AnalyticsService) BuildReport(dataType domain.DataType, timeRange domain.TimeRange) *domain.AnalyticsReport {
	rng := s.sources()
	report := &domain.AnalyticsReport{
		DataType:    dataType,
		TimeRange:   timeRange,
		GeneratedAt: s.clock.Now().UTC(),
	}

	if dataType.Includes(domain.DataTypeWasteReduction) {
		series := engine.WasteReductionSeries(timeRange, rng)
		report.WasteReduction = &domain.WasteReductionReport{
			Series:  series,
			Summary: engine.SummarizeWasteReduction(series),
		}
	}

	if dataType.Includes(domain.DataTypeCostSavings) {
		series := engine.CostSavingsSeries(timeRange, rng)
		report.CostSavings = &domain.CostSavingsReport{
			Series:           series,
			Summary:          engine.SummarizeCostSavings(series),
			CostPerKg:        s.costPerKg,
			ProjectedSavings: engine.CalculateCostSavings(s.report.WasteReductionKg, s.costPerKg),
		}
	}

	if dataType.Includes(domain.DataTypeEnvironmental) {
		impact := engine.CalculateEnvironmentalImpact(s.report.WasteReductionKg)
		report.Environmental = &domain.EnvironmentalReport{
			CO2ReductionKg:   impact.CO2ReductionKg,
			WaterSavedLiters: impact.WaterSavedLiters,
			LandUseReduction: impact.LandSavedM2,
			EnergySavedKWh:   s.report.EnergySavedKWh,
		}
	}

	if dataType.Includes(domain.DataTypeSDGImpact) {
		sdg := engine.CalculateSDGContribution(s.report.WasteReductionKg, s.report.FoodRedirectedKg)
		report.SDGImpact = &domain.SDGImpactReport{
			SDG2: domain.SDG2Report{
				FoodRedirectedKg: s.report.FoodRedirectedKg,
				MealsProvided:    sdg.MealsProvided,
				Beneficiaries:    s.report.Beneficiaries,
				Progress:         sdg.SDG2Score,
			},
			SDG12: domain.SDG12Report{
				WasteReductionPct:          s.report.WasteReductionPct,
				ResourceEfficiencyPct:      s.report.ResourceEfficiencyPct,
				CircularEconomyInitiatives: s.report.CircularEconomyInitiatives,
				Progress:                   sdg.SDG12Score,
			},
		}
	}

	return report
}

// InvalidateCache drops every cached report.
func (s *AnalyticsService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

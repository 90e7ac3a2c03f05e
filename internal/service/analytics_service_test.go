package service

import (
	"context"
	"testing"

	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReport = config.ReportConfig{
	WasteReductionKg:           5000,
	FoodRedirectedKg:           2450,
	Beneficiaries:              1200,
	EnergySavedKWh:             45000,
	WasteReductionPct:          32.5,
	ResourceEfficiencyPct:      28.7,
	CircularEconomyInitiatives: 5,
}

func newTestAnalyticsService(c *memoryCache) *AnalyticsService {
	opts := AnalyticsOptions{
		Sources:   engine.SeededSources(11),
		Clock:     engine.FixedClock(fixedNow),
		Report:    testReport,
		CostPerKg: 4.5,
	}
	if c != nil {
		opts.Cache = c
	}
	return NewAnalyticsService(opts)
}

func TestAnalyticsServiceBuildReportAll(t *testing.T) {
	svc := newTestAnalyticsService(nil)

	report := svc.BuildReport(domain.DataTypeAll, domain.TimeRangeWeek)

	assert.Equal(t, fixedNow, report.GeneratedAt)
	require.NotNil(t, report.WasteReduction)
	require.NotNil(t, report.CostSavings)
	require.NotNil(t, report.Environmental)
	require.NotNil(t, report.SDGImpact)

	assert.Len(t, report.WasteReduction.Series, 7)
	assert.Equal(t, 7, report.WasteReduction.Summary.Count)
	assert.Len(t, report.CostSavings.Series, 7)
	assert.Equal(t, 22500.0, report.CostSavings.ProjectedSavings)
	assert.Equal(t, 4.5, report.CostSavings.CostPerKg)

	assert.Equal(t, domain.EnvironmentalReport{
		CO2ReductionKg:   12500,
		WaterSavedLiters: 5000000,
		LandUseReduction: 2500,
		EnergySavedKWh:   45000,
	}, *report.Environmental)

	assert.Equal(t, domain.SDG2Report{
		FoodRedirectedKg: 2450,
		MealsProvided:    4900,
		Beneficiaries:    1200,
		Progress:         49,
	}, report.SDGImpact.SDG2)
	assert.Equal(t, 50, report.SDGImpact.SDG12.Progress)
	assert.Equal(t, 5, report.SDGImpact.SDG12.CircularEconomyInitiatives)
}

func TestAnalyticsServiceBuildReportSelectsSections(t *testing.T) {
	svc := newTestAnalyticsService(nil)

	tests := []struct {
		dataType domain.DataType
		want     func(*domain.AnalyticsReport) bool
	}{
		{domain.DataTypeWasteReduction, func(r *domain.AnalyticsReport) bool { return r.WasteReduction != nil }},
		{domain.DataTypeCostSavings, func(r *domain.AnalyticsReport) bool { return r.CostSavings != nil }},
		{domain.DataTypeEnvironmental, func(r *domain.AnalyticsReport) bool { return r.Environmental != nil }},
		{domain.DataTypeSDGImpact, func(r *domain.AnalyticsReport) bool { return r.SDGImpact != nil }},
	}

	for _, tt := range tests {
		t.Run(string(tt.dataType), func(t *testing.T) {
			report := svc.BuildReport(tt.dataType, domain.TimeRangeYear)
			assert.True(t, tt.want(report))

			sections := 0
			for _, present := range []bool{
				report.WasteReduction != nil,
				report.CostSavings != nil,
				report.Environmental != nil,
				report.SDGImpact != nil,
			} {
				if present {
					sections++
				}
			}
			assert.Equal(t, 1, sections)
		})
	}
}

func TestAnalyticsServiceMonthSeriesLength(t *testing.T) {
	svc := newTestAnalyticsService(nil)

	report := svc.BuildReport(domain.DataTypeWasteReduction, domain.TimeRangeMonth)
	require.Len(t, report.WasteReduction.Series, 30)
	assert.Equal(t, "Day 1", report.WasteReduction.Series[0].Label)
	assert.Equal(t, "Day 30", report.WasteReduction.Series[29].Label)
}

func TestAnalyticsServiceGetReportUsesCache(t *testing.T) {
	c := newMemoryCache()
	svc := newTestAnalyticsService(c)
	ctx := context.Background()

	first, err := svc.GetReport(ctx, domain.DataTypeCostSavings, domain.TimeRangeWeek)
	require.NoError(t, err)
	second, err := svc.GetReport(ctx, domain.DataTypeCostSavings, domain.TimeRangeWeek)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, c.gets)
	assert.Equal(t, 1, c.sets)

	require.NoError(t, svc.InvalidateCache(ctx))
	third, err := svc.GetReport(ctx, domain.DataTypeCostSavings, domain.TimeRangeWeek)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, c.sets)
}

func TestAnalyticsServiceGetReportSurvivesCacheFailure(t *testing.T) {
	c := newMemoryCache()
	c.failGet = true
	svc := newTestAnalyticsService(c)

	report, err := svc.GetReport(context.Background(), domain.DataTypeEnvironmental, domain.TimeRangeWeek)
	require.NoError(t, err)
	require.NotNil(t, report.Environmental)
	assert.Equal(t, 1, c.sets)
}

package engine

import (
	"fmt"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	monthLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

const daysPerMonthSeries = 30

// seriesShape holds the linear baseline and noise width of one time range.
type seriesShape struct {
	reductionBase, reductionStep float64
	targetBase, targetStep       float64
	reductionJitter              int
	savingsBase, savingsStep     float64
	savingsJitter                int
}

var seriesShapes = map[domain.TimeRange]seriesShape{
	domain.TimeRangeWeek: {
		reductionBase: 15, reductionStep: 2, targetBase: 20, targetStep: 1.5, reductionJitter: 5,
		savingsBase: 500, savingsStep: 300, savingsJitter: 200,
	},
	domain.TimeRangeMonth: {
		reductionBase: 15, reductionStep: 0.5, targetBase: 20, targetStep: 1.0 / 3, reductionJitter: 5,
		savingsBase: 500, savingsStep: 100, savingsJitter: 200,
	},
	domain.TimeRangeYear: {
		reductionBase: 15, reductionStep: 3, targetBase: 10, targetStep: 5, reductionJitter: 5,
		savingsBase: 2500, savingsStep: 750, savingsJitter: 500,
	},
}

// seriesLabels returns the period labels for tr; unknown ranges use the year.
func seriesLabels(tr domain.TimeRange) []string {
	switch tr {
	case domain.TimeRangeWeek:
		return weekdayLabels
	case domain.TimeRangeMonth:
		labels := make([]string, daysPerMonthSeries)
		for i := range labels {
			labels[i] = fmt.Sprintf("Day %d", i+1)
		}
		return labels
	default:
		return monthLabels
	}
}

func shapeFor(tr domain.TimeRange) seriesShape {
	if shape, ok := seriesShapes[tr]; ok {
		return shape
	}
	return seriesShapes[domain.TimeRangeYear]
}

// WasteReductionSeries simulates the waste reduction percentage per period
// against its target.
func WasteReductionSeries(tr domain.TimeRange, rng Source) []domain.WastePoint {
	shape := shapeFor(tr)
	labels := seriesLabels(tr)

	points := make([]domain.WastePoint, len(labels))
	for i, label := range labels {
		step := float64(i)
		points[i] = domain.WastePoint{
			Label:     label,
			Reduction: roundFloat(shape.reductionBase+step*shape.reductionStep+float64(rng.IntN(shape.reductionJitter)), 2),
			Target:    roundFloat(shape.targetBase+step*shape.targetStep, 2),
		}
	}
	return points
}

// CostSavingsSeries simulates monetary savings per period.
func CostSavingsSeries(tr domain.TimeRange, rng Source) []domain.SavingsPoint {
	shape := shapeFor(tr)
	labels := seriesLabels(tr)

	points := make([]domain.SavingsPoint, len(labels))
	for i, label := range labels {
		points[i] = domain.SavingsPoint{
			Label:   label,
			Savings: shape.savingsBase + float64(i)*shape.savingsStep + float64(rng.IntN(shape.savingsJitter)),
		}
	}
	return points
}

// SummarizeSeries reports count, total, mean, sample standard deviation and
// range of values. An empty series yields a zero summary.
func SummarizeSeries(values []float64) domain.SeriesSummary {
	if len(values) == 0 {
		return domain.SeriesSummary{Change: domain.WasteTrend{Trend: domain.TrendStable}}
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}

	return domain.SeriesSummary{
		Count:  len(values),
		Total:  roundFloat(floats.Sum(values), 2),
		Mean:   roundFloat(mean, 2),
		StdDev: roundFloat(std, 2),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Change: domain.WasteTrend{Trend: domain.TrendStable},
	}
}

// SummarizeWasteReduction summarizes the reduction series and classifies the
// remaining waste at the end of the range against the start.
func SummarizeWasteReduction(points []domain.WastePoint) domain.SeriesSummary {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Reduction
	}

	summary := SummarizeSeries(values)
	if len(points) > 0 {
		first := percentageFactor - points[0].Reduction
		last := percentageFactor - points[len(points)-1].Reduction
		summary.Change = CalculateWasteReduction(last, first)
	}
	return summary
}

// SummarizeCostSavings summarizes the savings series. Change is left stable
// since the waste trend rule does not apply to money.
func SummarizeCostSavings(points []domain.SavingsPoint) domain.SeriesSummary {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Savings
	}

	return SummarizeSeries(values)
}

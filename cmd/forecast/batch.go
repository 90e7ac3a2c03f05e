package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
)

var batchOutputHeader = []string{
	"category", "location", "target_date",
	"predicted_demand", "demand_confidence",
	"shelf_life_days", "shelf_life_confidence",
	"optimal_stock", "min_stock", "max_stock", "reorder_point", "reorder_quantity",
	"efficiency", "status", "recommendation",
}

// readPlanRequests parses a CSV of plan requests. Only the category column is
// required; empty cells and missing columns fall back to defaults.
func readPlanRequests(r io.Reader, defaults config.EngineConfig, now time.Time) ([]domain.PlanRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := index["category"]; !ok {
		return nil, errors.New("CSV header must contain a category column")
	}

	var reqs []domain.PlanRequest
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		cell := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		number := func(col string, fallback float64) (float64, error) {
			raw := cell(col)
			if raw == "" {
				return fallback, nil
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("line %d: %s %q is not a finite number", line, col, raw)
			}
			return v, nil
		}

		req := domain.PlanRequest{
			Category:    domain.ParseCategory(cell("category")),
			ProductName: cell("product_name"),
			TargetDate:  now,
			Location:    domain.ParseLocation(defaults.DefaultLocation),
		}
		if loc := cell("location"); loc != "" {
			req.Location = domain.ParseLocation(loc)
		}
		if raw := cell("date"); raw != "" {
			date, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: date %q must be YYYY-MM-DD", line, raw)
			}
			req.TargetDate = date
		}
		if req.StorageTemperatureC, err = number("temperature", defaults.DefaultTemperatureC); err != nil {
			return nil, err
		}
		if req.LeadTimeDays, err = number("lead_time", float64(defaults.DefaultLeadTimeDays)); err != nil {
			return nil, err
		}
		if req.CurrentStock, err = number("current_stock", float64(defaults.DefaultCurrentStock)); err != nil {
			return nil, err
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

func writePlanResults(w io.Writer, results []domain.PlanResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(batchOutputHeader); err != nil {
		return err
	}

	itoa := strconv.Itoa
	ftoa := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	for _, r := range results {
		record := []string{
			string(r.Category), string(r.Location), r.TargetDate,
			itoa(r.Demand.PredictedDemand), itoa(r.Demand.ConfidenceInterval),
			ftoa(r.ShelfLife.PredictedDays), ftoa(r.ShelfLife.ConfidenceIntervalDays),
			itoa(r.Inventory.OptimalStock), itoa(r.Inventory.MinStock), itoa(r.Inventory.MaxStock),
			itoa(r.Inventory.ReorderPoint), itoa(r.Inventory.ReorderQuantity),
			ftoa(r.Efficiency.Efficiency), string(r.Efficiency.Status), r.Efficiency.Recommendation,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

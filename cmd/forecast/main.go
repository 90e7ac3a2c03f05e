package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/config"
	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/andresuchdata/wastewise/backend-go/internal/engine"
	"github.com/andresuchdata/wastewise/backend-go/internal/service"
	"github.com/andresuchdata/wastewise/backend-go/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()
	// stdout carries command output
	logger.ConfigureOutput(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("forecast failed")
	}
}

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "forecast",
		Usage: "Run demand, shelf-life and inventory predictions from the command line",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "Seed for the random source; 0 draws from runtime entropy",
				Value:   cfg.Engine.Seed,
				EnvVars: []string{"ENGINE_SEED"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "demand",
				Usage: "Predict unit demand for a category on a date",
				Flags: []cli.Flag{categoryFlag(), dateFlag(), locationFlag(cfg)},
				Action: func(c *cli.Context) error {
					svc := newForecastService(c)
					date, err := parseDate(c.String("date"), svc.Now())
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, svc.PredictDemand(domain.DemandPredictionRequest{
						Category:   domain.ParseCategory(c.String("category")),
						TargetDate: date,
						Location:   domain.ParseLocation(c.String("location")),
					}))
				},
			},
			{
				Name:  "shelf-life",
				Usage: "Predict shelf life in days at a storage temperature",
				Flags: []cli.Flag{categoryFlag(), temperatureFlag(cfg)},
				Action: func(c *cli.Context) error {
					return printJSON(c.App.Writer, newForecastService(c).PredictShelfLife(domain.ShelfLifeRequest{
						Category:            domain.ParseCategory(c.String("category")),
						StorageTemperatureC: c.Float64("temperature"),
					}))
				},
			},
			{
				Name:  "inventory",
				Usage: "Recommend stock levels for a 7-day demand estimate",
				Flags: []cli.Flag{
					categoryFlag(),
					currentStockFlag(cfg),
					leadTimeFlag(cfg),
					&cli.Float64Flag{Name: "shelf-life", Usage: "Shelf life in days", Value: cfg.Engine.DefaultShelfLifeDays},
					&cli.Float64Flag{Name: "demand", Usage: "Predicted 7-day demand", Value: cfg.Engine.DefaultDemandPrediction},
				},
				Action: func(c *cli.Context) error {
					return printJSON(c.App.Writer, newForecastService(c).OptimizeInventory(domain.InventoryOptimizationRequest{
						Category:         domain.ParseCategory(c.String("category")),
						CurrentStock:     c.Float64("current-stock"),
						LeadTimeDays:     c.Float64("lead-time"),
						ShelfLifeDays:    c.Float64("shelf-life"),
						DemandPrediction: c.Float64("demand"),
					}))
				},
			},
			{
				Name:  "plan",
				Usage: "Chain demand, shelf life, inventory and efficiency for one product line",
				Flags: []cli.Flag{
					categoryFlag(), dateFlag(), locationFlag(cfg),
					temperatureFlag(cfg), leadTimeFlag(cfg), currentStockFlag(cfg),
				},
				Action: func(c *cli.Context) error {
					svc := newForecastService(c)
					date, err := parseDate(c.String("date"), svc.Now())
					if err != nil {
						return err
					}
					result, err := svc.Plan(c.Context, domain.PlanRequest{
						Category:            domain.ParseCategory(c.String("category")),
						TargetDate:          date,
						Location:            domain.ParseLocation(c.String("location")),
						StorageTemperatureC: c.Float64("temperature"),
						LeadTimeDays:        c.Float64("lead-time"),
						CurrentStock:        c.Float64("current-stock"),
					})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, result)
				},
			},
			{
				Name:  "impact",
				Usage: "Convert avoided and redirected waste into environmental and SDG metrics",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "waste-reduction", Usage: "Avoided waste in kg", Value: cfg.Report.WasteReductionKg},
					&cli.Float64Flag{Name: "food-redirected", Usage: "Food redirected to people in kg", Value: cfg.Report.FoodRedirectedKg},
				},
				Action: func(c *cli.Context) error {
					impact, sdg := newForecastService(c).Impact(c.Float64("waste-reduction"), c.Float64("food-redirected"))
					return printJSON(c.App.Writer, map[string]any{"impact": impact, "sdg": sdg})
				},
			},
			{
				Name:  "efficiency",
				Usage: "Rate current stock against the optimal level",
				Flags: []cli.Flag{
					currentStockFlag(cfg),
					&cli.Float64Flag{Name: "optimal-stock", Usage: "Optimal stock level", Required: true},
				},
				Action: func(c *cli.Context) error {
					return printJSON(c.App.Writer, newForecastService(c).AnalyzeEfficiency(c.Float64("current-stock"), c.Float64("optimal-stock")))
				},
			},
			{
				Name:      "batch",
				Usage:     "Plan every row of a CSV and write the recommendations as CSV",
				ArgsUsage: "<input.csv>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file; stdout when empty"},
					&cli.IntFlag{
						Name:    "workers",
						Usage:   "Number of rows planned concurrently",
						Value:   cfg.Engine.BatchWorkers,
						EnvVars: []string{"ENGINE_BATCH_WORKERS"},
					},
				},
				Action: func(c *cli.Context) error {
					return runBatch(c, cfg.Engine)
				},
			},
		},
	}
}

func runBatch(c *cli.Context, defaults config.EngineConfig) error {
	if c.NArg() != 1 {
		return fmt.Errorf("batch expects exactly one input file, got %d", c.NArg())
	}

	input, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Args().First(), err)
	}
	defer input.Close()

	svc := newForecastService(c)
	reqs, err := readPlanRequests(input, defaults, svc.Now())
	if err != nil {
		return err
	}

	results, err := svc.PlanBatch(c.Context, reqs, c.Int("workers"))
	if err != nil {
		return err
	}

	path := c.String("output")
	if path == "" {
		return writePlanResults(c.App.Writer, results)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writePlanResults(file, results); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func newForecastService(c *cli.Context) *service.ForecastService {
	return service.NewForecastService(engine.SourcesFor(c.Uint64("seed")), engine.SystemClock{}, nil)
}

func parseDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", raw)
	}
	return date, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Product category (fruits, dairy, bakery, meat, other)", Required: true}
}

func dateFlag() cli.Flag {
	return &cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Target date as YYYY-MM-DD; today when empty"}
}

func locationFlag(cfg *config.Config) cli.Flag {
	return &cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Store or warehouse id", Value: cfg.Engine.DefaultLocation}
}

func temperatureFlag(cfg *config.Config) cli.Flag {
	return &cli.Float64Flag{Name: "temperature", Aliases: []string{"t"}, Usage: "Storage temperature in °C", Value: cfg.Engine.DefaultTemperatureC}
}

func leadTimeFlag(cfg *config.Config) cli.Flag {
	return &cli.Float64Flag{Name: "lead-time", Usage: "Supplier lead time in days", Value: float64(cfg.Engine.DefaultLeadTimeDays)}
}

func currentStockFlag(cfg *config.Config) cli.Flag {
	return &cli.Float64Flag{Name: "current-stock", Usage: "Units currently on hand", Value: float64(cfg.Engine.DefaultCurrentStock)}
}

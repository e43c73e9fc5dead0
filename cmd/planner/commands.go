package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/alimenta-labs/prodplan/backend-go/internal/config"
	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
	"github.com/alimenta-labs/prodplan/backend-go/internal/forecast"
	"github.com/alimenta-labs/prodplan/backend-go/internal/ingest"
	"github.com/alimenta-labs/prodplan/backend-go/internal/repository"
	"github.com/alimenta-labs/prodplan/backend-go/internal/repository/postgres"
	"github.com/alimenta-labs/prodplan/backend-go/internal/service"
)

func runSeed(c *cli.Context) error {
	consumptionFile := c.String("consumption-file")
	productsFile := c.String("products-file")
	if consumptionFile == "" && productsFile == "" {
		return fmt.Errorf("nothing to seed: pass --consumption-file and/or --products-file")
	}

	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	loader := ingest.NewLoader(db.DB.DB)

	if productsFile != "" {
		file, err := os.Open(productsFile)
		if err != nil {
			return fmt.Errorf("failed to open products file: %w", err)
		}
		records, err := ingest.ReadProductsCSV(file)
		file.Close()
		if err != nil {
			return err
		}
		if err := loader.SeedProducts(c.Context, records); err != nil {
			return err
		}
	}

	if consumptionFile != "" {
		file, err := os.Open(consumptionFile)
		if err != nil {
			return fmt.Errorf("failed to open consumption file: %w", err)
		}
		records, err := ingest.ReadConsumptionCSV(file)
		file.Close()
		if err != nil {
			return err
		}
		if err := loader.SeedConsumption(c.Context, records); err != nil {
			return err
		}
	}

	return nil
}

func runProduce(c *cli.Context) error {
	file, err := openSnapshot(c.String("snapshot-file"))
	if err != nil {
		return err
	}
	snapshots, err := ingest.ReadSnapshotCSV(file)
	file.Close()
	if err != nil {
		return err
	}

	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := config.Load()
	svc := service.NewProductionService(
		repository.NewReferenceRepository(db.DB),
		repository.NewRunRepository(db),
		cfg.Planning,
	)

	plan, err := svc.ComputePlan(c.Context, snapshots, forecast.PlanningConfig{
		CoverageDays:    c.Int("coverage-days"),
		SafetyBuffer:    c.Int("safety-buffer"),
		HolidayLeadDays: c.Int("holiday-lead-days"),
	})
	if err != nil {
		return err
	}

	if label := c.String("priority"); label != "" {
		priority, ok := domain.ParsePriority(label)
		if !ok {
			return fmt.Errorf("unknown priority %q", label)
		}
		filtered := plan.Items[:0]
		for _, item := range plan.Items {
			if item.Priority == priority {
				filtered = append(filtered, item)
			}
		}
		plan.Items = filtered
	}

	printProductionPlan(plan)
	return nil
}

func runAnalyze(c *cli.Context) error {
	file, err := openSnapshot(c.String("snapshot-file"))
	if err != nil {
		return err
	}
	snapshots, err := ingest.ReadSnapshotCSV(file)
	file.Close()
	if err != nil {
		return err
	}

	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := config.Load()
	svc := service.NewReorderService(
		repository.NewReferenceRepository(db.DB),
		repository.NewRunRepository(db),
		nil,
		cfg.Planning,
	)

	analysis, err := svc.Analyze(c.Context, snapshots, c.Int("year"))
	if err != nil {
		return err
	}

	printReorderAnalysis(analysis)
	return nil
}

func printProductionPlan(plan *domain.ProductionPlan) {
	fmt.Printf("Run %s (%d SKUs, holiday factor %.2f)\n\n", plan.Run.Label, plan.Run.TotalSKUs, plan.Run.HolidayFactor)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tSTOCK\tUSAGE/DAY\tDAYS LEFT\tPRODUCE\tPRIORITY")
	for _, item := range plan.Items {
		produce := "-"
		if item.MustProduce {
			produce = fmt.Sprintf("%d", item.AmountToProduce)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.2f\t%.1f\t%s\t%s\n",
			item.SKU, item.Name, item.CurrentStock, item.DailyUsage,
			item.DaysUntilStockout, produce, item.Priority)
	}
	w.Flush()
}

func printReorderAnalysis(analysis *domain.ReorderAnalysis) {
	fmt.Printf("Run %s (year %d, %d SKUs)\n\n", analysis.Run.Label, analysis.Run.TargetYear, analysis.Run.TotalSKUs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tSTOCK\tUSAGE/MONTH\tCOVERAGE\tSTATUS\tNOTE")
	for _, item := range analysis.Items {
		coverage := "∞"
		if item.CoverageMonths != nil {
			coverage = fmt.Sprintf("%.1f", *item.CoverageMonths)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.2f\t%s\t%s\t%s\n",
			item.SKU, item.Name, item.Stock, item.MonthlyUsage,
			coverage, item.Status, item.StatusNote)
	}
	w.Flush()
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newSnapshotFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "snapshot-file",
		Usage:    "CSV file with the current stock snapshot (sku,name,current_stock)",
		Required: true,
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "planner",
		Usage: "Production and reorder planning from the command line",
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Load normalized consumption and product CSVs into the database",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "consumption-file",
						Usage: "CSV file with monthly consumption (sku,year,m1..m12)",
					},
					&cli.StringFlag{
						Name:  "products-file",
						Usage: "CSV file with product reference data (sku,name,min_stock,lead_time_months)",
					},
				},
				Action: runSeed,
			},
			{
				Name:  "produce",
				Usage: "Compute a production plan from a stock snapshot",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newSnapshotFileFlag(),
					&cli.IntFlag{Name: "coverage-days", Usage: "Days of demand to cover (0 = default)"},
					&cli.IntFlag{Name: "safety-buffer", Usage: "Safety buffer in days (0 = default)"},
					&cli.IntFlag{Name: "holiday-lead-days", Usage: "Pre-holiday ramp-up window (0 = default)"},
					&cli.StringFlag{Name: "priority", Usage: "Only print items with this priority (Hoch, Mittel, Tief)"},
				},
				Action: runProduce,
			},
			{
				Name:  "analyze",
				Usage: "Compute a raw-material reorder analysis from a stock snapshot",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newSnapshotFileFlag(),
					&cli.IntFlag{Name: "year", Usage: "Consumption year to analyze (0 = current year)"},
				},
				Action: runAnalyze,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openSnapshot(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	return file, nil
}

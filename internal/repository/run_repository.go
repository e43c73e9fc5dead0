// backend-go/internal/repository/run_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
	"github.com/alimenta-labs/prodplan/backend-go/internal/repository/postgres"
)

// RunRepository persists planning runs. A run is written once: header plus
// line items in one transaction, no partial writes.
type RunRepository interface {
	SaveProductionRun(ctx context.Context, run *domain.ProductionRun, items []domain.ProductionPlanItem) error
	GetProductionRun(ctx context.Context, id int64) (*domain.ProductionPlan, error)
	ListProductionRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error)
	SaveAnalysisRun(ctx context.Context, run *domain.AnalysisRun, items []domain.ReorderItem) error
	GetLatestAnalysis(ctx context.Context, year int) (*domain.ReorderAnalysis, error)
}

type runRepository struct {
	db *postgres.DB
}

func NewRunRepository(db *postgres.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) SaveProductionRun(ctx context.Context, run *domain.ProductionRun, items []domain.ProductionPlanItem) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO production_runs (
				label, created_at, coverage_days, safety_buffer_days,
				holiday_lead_days, holiday_factor, total_skus
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		err := tx.QueryRowContext(
			ctx, headerQuery,
			run.Label, run.CreatedAt, run.CoverageDays, run.SafetyBufferDays,
			run.HolidayLeadDays, run.HolidayFactor, run.TotalSKUs,
		).Scan(&run.ID)
		if err != nil {
			return fmt.Errorf("error inserting production run: %w", err)
		}

		itemQuery := `
			INSERT INTO production_run_items (
				run_id, position, sku, name, current_stock, daily_usage,
				days_until_stockout, desired_stock, amount_to_produce,
				must_produce, priority, used_fallback
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`

		for i, item := range items {
			if _, err := tx.ExecContext(
				ctx, itemQuery,
				run.ID, i, item.SKU, item.Name, item.CurrentStock, item.DailyUsage,
				item.DaysUntilStockout, item.DesiredStock, item.AmountToProduce,
				item.MustProduce, item.Priority, item.UsedFallback,
			); err != nil {
				return fmt.Errorf("error inserting production run item %s: %w", item.SKU, err)
			}
		}

		return nil
	})
}

func (r *runRepository) GetProductionRun(ctx context.Context, id int64) (*domain.ProductionPlan, error) {
	headerQuery := `
		SELECT id, label, created_at, coverage_days, safety_buffer_days,
		       holiday_lead_days, holiday_factor, total_skus
		FROM production_runs
		WHERE id = $1
	`

	var run domain.ProductionRun
	if err := r.db.GetContext(ctx, &run, headerQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting production run %d: %w", id, err)
	}

	itemQuery := `
		SELECT sku, name, current_stock, daily_usage, days_until_stockout,
		       desired_stock, amount_to_produce, must_produce, priority, used_fallback
		FROM production_run_items
		WHERE run_id = $1
		ORDER BY position
	`

	var items []domain.ProductionPlanItem
	if err := r.db.SelectContext(ctx, &items, itemQuery, id); err != nil {
		return nil, fmt.Errorf("error getting production run items: %w", err)
	}

	return &domain.ProductionPlan{Run: run, Items: items}, nil
}

func (r *runRepository) ListProductionRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT id, label, created_at, coverage_days, safety_buffer_days,
		       holiday_lead_days, holiday_factor, total_skus
		FROM production_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	var runs []domain.ProductionRun
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("error listing production runs: %w", err)
	}

	return runs, nil
}

func (r *runRepository) SaveAnalysisRun(ctx context.Context, run *domain.AnalysisRun, items []domain.ReorderItem) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO analysis_runs (label, created_at, target_year, total_skus)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err := tx.QueryRowContext(
			ctx, headerQuery,
			run.Label, run.CreatedAt, run.TargetYear, run.TotalSKUs,
		).Scan(&run.ID)
		if err != nil {
			return fmt.Errorf("error inserting analysis run: %w", err)
		}

		itemQuery := `
			INSERT INTO analysis_run_items (
				run_id, position, sku, name, stock, monthly_usage,
				coverage_months, status, status_note, trend,
				lead_time_warning, used_fallback
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`

		for i, item := range items {
			if _, err := tx.ExecContext(
				ctx, itemQuery,
				run.ID, i, item.SKU, item.Name, item.Stock, item.MonthlyUsage,
				item.CoverageMonths, item.Status, item.StatusNote, item.Trend,
				item.LeadTimeWarning, item.UsedFallback,
			); err != nil {
				return fmt.Errorf("error inserting analysis run item %s: %w", item.SKU, err)
			}
		}

		return nil
	})
}

func (r *runRepository) GetLatestAnalysis(ctx context.Context, year int) (*domain.ReorderAnalysis, error) {
	headerQuery := `
		SELECT id, label, created_at, target_year, total_skus
		FROM analysis_runs
		WHERE target_year = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var run domain.AnalysisRun
	if err := r.db.GetContext(ctx, &run, headerQuery, year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting latest analysis for %d: %w", year, err)
	}

	itemQuery := `
		SELECT sku, name, stock, monthly_usage, coverage_months, status,
		       status_note, trend, lead_time_warning, used_fallback
		FROM analysis_run_items
		WHERE run_id = $1
		ORDER BY position
	`

	var items []domain.ReorderItem
	if err := r.db.SelectContext(ctx, &items, itemQuery, run.ID); err != nil {
		return nil, fmt.Errorf("error getting analysis run items: %w", err)
	}

	return &domain.ReorderAnalysis{Run: run, Items: items}, nil
}

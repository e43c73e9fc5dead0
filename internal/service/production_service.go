package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alimenta-labs/prodplan/backend-go/internal/config"
	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
	"github.com/alimenta-labs/prodplan/backend-go/internal/forecast"
	"github.com/alimenta-labs/prodplan/backend-go/internal/repository"
)

// ProductionService runs the production planner against persisted consumption
// history and records each run.
type ProductionService struct {
	refs     repository.ReferenceRepository
	runs     repository.RunRepository
	defaults config.PlanningConfig
}

func NewProductionService(refs repository.ReferenceRepository, runs repository.RunRepository, defaults config.PlanningConfig) *ProductionService {
	return &ProductionService{refs: refs, runs: runs, defaults: defaults}
}

// ComputePlan plans production for the given stock snapshots. Zero or negative
// config values fall back to the configured defaults. The monthly demand
// signal comes from the same calendar month one year back, so the plan always
// reads last year's series.
func (s *ProductionService) ComputePlan(ctx context.Context, snapshots []domain.SkuSnapshot, cfg forecast.PlanningConfig) (*domain.ProductionPlan, error) {
	if cfg.CoverageDays <= 0 {
		cfg.CoverageDays = s.defaults.CoverageDays
	}
	if cfg.SafetyBuffer <= 0 {
		cfg.SafetyBuffer = s.defaults.SafetyBuffer
	}
	if cfg.HolidayLeadDays <= 0 {
		cfg.HolidayLeadDays = s.defaults.HolidayLeadDays
	}

	now := time.Now().UTC()

	seriesList, err := s.refs.GetMonthlySeries(ctx, now.Year()-1)
	if err != nil {
		return nil, fmt.Errorf("error loading consumption history: %w", err)
	}

	series := make(map[string]domain.MonthlySeries, len(seriesList))
	for _, sr := range seriesList {
		series[strings.TrimSpace(sr.SKU)] = sr
	}

	refs, err := s.refs.GetSkuReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading sku references: %w", err)
	}

	minStocks := make(map[string]float64, len(refs))
	for _, ref := range refs {
		minStocks[strings.TrimSpace(ref.SKU)] = ref.MinStock
	}

	planner := forecast.NewProductionPlanner(cfg)
	items, factor := planner.Plan(snapshots, series, minStocks, now)

	run := &domain.ProductionRun{
		Label:            uuid.NewString(),
		CreatedAt:        now,
		CoverageDays:     cfg.CoverageDays,
		SafetyBufferDays: cfg.SafetyBuffer,
		HolidayLeadDays:  cfg.HolidayLeadDays,
		HolidayFactor:    factor,
		TotalSKUs:        len(items),
	}

	if err := s.runs.SaveProductionRun(ctx, run, items); err != nil {
		return nil, fmt.Errorf("error saving production run: %w", err)
	}

	log.Info().
		Str("label", run.Label).
		Int("skus", run.TotalSKUs).
		Float64("holiday_factor", factor).
		Msg("production plan computed")

	return &domain.ProductionPlan{Run: *run, Items: items}, nil
}

func (s *ProductionService) GetRun(ctx context.Context, id int64) (*domain.ProductionPlan, error) {
	return s.runs.GetProductionRun(ctx, id)
}

func (s *ProductionService) ListRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error) {
	return s.runs.ListProductionRuns(ctx, limit)
}

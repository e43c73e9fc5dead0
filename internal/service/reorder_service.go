package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alimenta-labs/prodplan/backend-go/internal/cache"
	"github.com/alimenta-labs/prodplan/backend-go/internal/config"
	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
	"github.com/alimenta-labs/prodplan/backend-go/internal/forecast"
	"github.com/alimenta-labs/prodplan/backend-go/internal/repository"
)

// ReorderService runs the raw-material coverage analysis and keeps the latest
// result per target year cached for the dashboard poll.
type ReorderService struct {
	refs     repository.ReferenceRepository
	runs     repository.RunRepository
	cache    cache.AnalysisCache
	defaults config.PlanningConfig
}

func NewReorderService(refs repository.ReferenceRepository, runs repository.RunRepository, cacheImpl cache.AnalysisCache, defaults config.PlanningConfig) *ReorderService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	return &ReorderService{refs: refs, runs: runs, cache: cacheImpl, defaults: defaults}
}

// Analyze computes coverage for the given snapshots against the target year's
// consumption. A year of zero means the configured default (current year when
// that is unset too).
func (s *ReorderService) Analyze(ctx context.Context, snapshots []domain.SkuSnapshot, year int) (*domain.ReorderAnalysis, error) {
	now := time.Now().UTC()
	if year <= 0 {
		year = s.defaults.ResolveTargetYear(now)
	}

	seriesList, err := s.refs.GetMonthlySeries(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("error loading consumption history: %w", err)
	}

	series := make(map[string]domain.MonthlySeries, len(seriesList))
	for _, sr := range seriesList {
		series[strings.ToLower(strings.TrimSpace(sr.SKU))] = sr
	}

	refs, err := s.refs.GetSkuReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading sku references: %w", err)
	}

	leadTimes := make(map[string]*float64, len(refs))
	for _, ref := range refs {
		leadTimes[strings.ToLower(strings.TrimSpace(ref.SKU))] = ref.LeadTimeMonths
	}

	analyzer := forecast.NewReorderAnalyzer()
	items := analyzer.Analyze(snapshots, series, leadTimes, now)

	run := &domain.AnalysisRun{
		Label:      uuid.NewString(),
		CreatedAt:  now,
		TargetYear: year,
		TotalSKUs:  len(items),
	}

	if err := s.runs.SaveAnalysisRun(ctx, run, items); err != nil {
		return nil, fmt.Errorf("error saving analysis run: %w", err)
	}

	analysis := &domain.ReorderAnalysis{Run: *run, Items: items}

	if err := s.cache.SetLatest(ctx, analysis); err != nil {
		log.Warn().Err(err).Msg("reorder: cache set latest failed")
	}

	log.Info().
		Str("label", run.Label).
		Int("year", year).
		Int("skus", run.TotalSKUs).
		Msg("reorder analysis computed")

	return analysis, nil
}

// GetLatest returns the most recent analysis for the year, preferring the
// cache over Postgres. Returns nil when no analysis has been run yet.
func (s *ReorderService) GetLatest(ctx context.Context, year int) (*domain.ReorderAnalysis, error) {
	if year <= 0 {
		year = s.defaults.ResolveTargetYear(time.Now().UTC())
	}

	if analysis, ok, err := s.cache.GetLatest(ctx, year); err == nil && ok {
		return analysis, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("reorder: cache get latest failed")
	}

	analysis, err := s.runs.GetLatestAnalysis(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("error loading latest analysis: %w", err)
	}
	if analysis == nil {
		return nil, nil
	}

	if err := s.cache.SetLatest(ctx, analysis); err != nil {
		log.Warn().Err(err).Msg("reorder: cache set latest failed")
	}

	return analysis, nil
}

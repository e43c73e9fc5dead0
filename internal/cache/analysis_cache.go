package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alimenta-labs/prodplan/backend-go/internal/config"
	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

const (
	analysisKeyPrefix     = "reorder:analysis"
	analysisScanBatchSize = 100
)

// AnalysisCache holds the most recent reorder analysis per target year so the
// dashboard poll does not hit Postgres on every request. A fresh analysis run
// replaces the cached entry for its year.
type AnalysisCache interface {
	GetLatest(ctx context.Context, year int) (*domain.ReorderAnalysis, bool, error)
	SetLatest(ctx context.Context, analysis *domain.ReorderAnalysis) error
	InvalidateYear(ctx context.Context, year int) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) GetLatest(ctx context.Context, year int) (*domain.ReorderAnalysis, bool, error) {
	payload, err := c.client.Get(ctx, buildAnalysisKey(year)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var analysis domain.ReorderAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, false, fmt.Errorf("decode analysis cache: %w", err)
	}

	return &analysis, true, nil
}

func (c *redisAnalysisCache) SetLatest(ctx context.Context, analysis *domain.ReorderAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}

	key := buildAnalysisKey(analysis.Run.TargetYear)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) InvalidateYear(ctx context.Context, year int) error {
	return c.client.Del(ctx, buildAnalysisKey(year)).Err()
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisKeyPrefix, analysisScanBatchSize)
}

func (n *noopAnalysisCache) GetLatest(ctx context.Context, year int) (*domain.ReorderAnalysis, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) SetLatest(ctx context.Context, analysis *domain.ReorderAnalysis) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateYear(ctx context.Context, year int) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildAnalysisKey(year int) string {
	return fmt.Sprintf("%s:%d", analysisKeyPrefix, year)
}

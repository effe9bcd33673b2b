package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/koncoweb/petnexus-sub000/internal/config"
	"github.com/koncoweb/petnexus-sub000/internal/domain"
)

const (
	analysisKeyPrefix     = "restock:analysis"
	analysisScanBatchSize = 100
)

// AnalysisCache memoizes restock analysis results per scope. Analyses are
// deterministic for a given snapshot, so a short TTL keeps the dashboard
// cheap without persisting engine output.
type AnalysisCache interface {
	Get(ctx context.Context, scope domain.AnalysisScope) (*domain.AnalysisResult, bool, error)
	Set(ctx context.Context, scope domain.AnalysisScope, result *domain.AnalysisResult) error
	Invalidate(ctx context.Context, scope domain.AnalysisScope) error
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

func (c *redisAnalysisCache) Get(ctx context.Context, scope domain.AnalysisScope) (*domain.AnalysisResult, bool, error) {
	payload, err := c.client.Get(ctx, buildAnalysisKey(scope)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode analysis cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisAnalysisCache) Set(ctx context.Context, scope domain.AnalysisScope, result *domain.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}

	if err := c.client.Set(ctx, buildAnalysisKey(scope), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) Invalidate(ctx context.Context, scope domain.AnalysisScope) error {
	return c.client.Del(ctx, buildAnalysisKey(scope)).Err()
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisKeyPrefix, analysisScanBatchSize)
}

func (n *noopAnalysisCache) Get(ctx context.Context, scope domain.AnalysisScope) (*domain.AnalysisResult, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) Set(ctx context.Context, scope domain.AnalysisScope, result *domain.AnalysisResult) error {
	return nil
}

func (n *noopAnalysisCache) Invalidate(ctx context.Context, scope domain.AnalysisScope) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildAnalysisKey(scope domain.AnalysisScope) string {
	return fmt.Sprintf("%s:%s", analysisKeyPrefix, analysisScopeHash(scope))
}

func analysisScopeHash(scope domain.AnalysisScope) string {
	parts := []string{"store_id=" + strings.TrimSpace(scope.StoreID)}
	if scope.SupplierID != "" {
		parts = append(parts, "supplier_id="+strings.TrimSpace(scope.SupplierID))
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"riskwatch/internal/model"

	"github.com/redis/go-redis/v9"
)

const analyticsSummaryKey = "riskwatch:analytics:summary"

// AnalyticsCache stores the admin dashboard rollup
type AnalyticsCache interface {
	GetSummary(ctx context.Context) (*model.AnalyticsSummary, error)
	SetSummary(ctx context.Context, summary *model.AnalyticsSummary) error
	Invalidate(ctx context.Context) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a Redis-backed analytics cache
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) AnalyticsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &analyticsCache{client: client, ttl: ttl}
}

// GetSummary returns nil, nil on a cache miss
func (c *analyticsCache) GetSummary(ctx context.Context) (*model.AnalyticsSummary, error) {
	data, err := c.client.Get(ctx, analyticsSummaryKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.AnalyticsSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *analyticsCache) SetSummary(ctx context.Context, summary *model.AnalyticsSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analyticsSummaryKey, data, c.ttl).Err()
}

func (c *analyticsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, analyticsSummaryKey).Err()
}

// memoryAnalyticsCache is used when Redis is disabled
type memoryAnalyticsCache struct {
	mu      sync.RWMutex
	summary *model.AnalyticsSummary
	expires time.Time
	ttl     time.Duration
}

// NewMemoryAnalyticsCache creates a process-local analytics cache
func NewMemoryAnalyticsCache(ttl time.Duration) AnalyticsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &memoryAnalyticsCache{ttl: ttl}
}

func (c *memoryAnalyticsCache) GetSummary(context.Context) (*model.AnalyticsSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.summary == nil || time.Now().After(c.expires) {
		return nil, nil
	}
	s := *c.summary
	return &s, nil
}

func (c *memoryAnalyticsCache) SetSummary(_ context.Context, summary *model.AnalyticsSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := *summary
	c.summary = &s
	c.expires = time.Now().Add(c.ttl)
	return nil
}

func (c *memoryAnalyticsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = nil
	return nil
}

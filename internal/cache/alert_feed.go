package cache

import (
	"context"
	"encoding/json"
	"sync"

	"riskwatch/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	alertFeedKey = "riskwatch:alerts:recent"
	// alertFeedCap is how many alerts the feed retains
	alertFeedCap = 100
)

// AlertFeed keeps the most recent alerts, newest first. It doubles as an
// alert.Sink.
type AlertFeed interface {
	Name() string
	Deliver(ctx context.Context, a model.Alert) error
	Recent(ctx context.Context, limit int) ([]model.Alert, error)
}

type redisAlertFeed struct {
	client *redis.Client
}

// NewAlertFeed creates a Redis list-backed feed
func NewAlertFeed(client *redis.Client) AlertFeed {
	return &redisAlertFeed{client: client}
}

func (f *redisAlertFeed) Name() string { return "redis-feed" }

func (f *redisAlertFeed) Deliver(ctx context.Context, a model.Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, alertFeedKey, data)
	pipe.LTrim(ctx, alertFeedKey, 0, alertFeedCap-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (f *redisAlertFeed) Recent(ctx context.Context, limit int) ([]model.Alert, error) {
	if limit <= 0 || limit > alertFeedCap {
		limit = alertFeedCap
	}
	items, err := f.client.LRange(ctx, alertFeedKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	alerts := make([]model.Alert, 0, len(items))
	for _, item := range items {
		var a model.Alert
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

type memoryAlertFeed struct {
	mu     sync.RWMutex
	alerts []model.Alert
}

// NewMemoryAlertFeed creates a process-local feed used when Redis is disabled
func NewMemoryAlertFeed() AlertFeed {
	return &memoryAlertFeed{}
}

func (f *memoryAlertFeed) Name() string { return "memory-feed" }

func (f *memoryAlertFeed) Deliver(_ context.Context, a model.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append([]model.Alert{a}, f.alerts...)
	if len(f.alerts) > alertFeedCap {
		f.alerts = f.alerts[:alertFeedCap]
	}
	return nil
}

func (f *memoryAlertFeed) Recent(_ context.Context, limit int) ([]model.Alert, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if limit <= 0 || limit > len(f.alerts) {
		limit = len(f.alerts)
	}
	out := make([]model.Alert, limit)
	copy(out, f.alerts[:limit])
	return out, nil
}

package cache

import (
	"context"
	"sort"
	"sync"

	"riskwatch/internal/model"

	"github.com/redis/go-redis/v9"
)

const riskBoardKey = "risk:board"

// RiskBoard ranks students by their latest dropout probability
type RiskBoard interface {
	UpdateScore(ctx context.Context, studentID string, probability float64) error
	GetTop(ctx context.Context, limit int) ([]RiskBoardEntry, error)
	GetRank(ctx context.Context, studentID string) (int64, error)
}

// RiskBoardEntry represents a single ranked student
type RiskBoardEntry struct {
	StudentID   string         `json:"studentId"`
	Probability float64        `json:"probability"`
	Tier        model.RiskTier `json:"tier"`
	Rank        int            `json:"rank"`
}

type riskBoard struct {
	client *redis.Client
}

// NewRiskBoard creates a Redis ZSET backed board
func NewRiskBoard(client *redis.Client) RiskBoard {
	return &riskBoard{
		client: client,
	}
}

func (c *riskBoard) UpdateScore(ctx context.Context, studentID string, probability float64) error {
	return c.client.ZAdd(ctx, riskBoardKey, redis.Z{
		Score:  probability,
		Member: studentID,
	}).Err()
}

func (c *riskBoard) GetTop(ctx context.Context, limit int) ([]RiskBoardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, riskBoardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]RiskBoardEntry, len(results))
	for i, z := range results {
		entries[i] = RiskBoardEntry{
			StudentID:   z.Member.(string),
			Probability: z.Score,
			Rank:        i + 1,
		}
	}
	return entries, nil
}

func (c *riskBoard) GetRank(ctx context.Context, studentID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, riskBoardKey, studentID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

// memoryRiskBoard serves single-node deployments without Redis
type memoryRiskBoard struct {
	mu     sync.RWMutex
	scores map[string]float64
}

// NewMemoryRiskBoard creates an in-process board
func NewMemoryRiskBoard() RiskBoard {
	return &memoryRiskBoard{scores: make(map[string]float64)}
}

func (c *memoryRiskBoard) UpdateScore(_ context.Context, studentID string, probability float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[studentID] = probability
	return nil
}

func (c *memoryRiskBoard) ranked() []RiskBoardEntry {
	entries := make([]RiskBoardEntry, 0, len(c.scores))
	for id, p := range c.scores {
		entries = append(entries, RiskBoardEntry{StudentID: id, Probability: p})
	}
	// ties break on member, descending, like ZREVRANGE
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Probability != entries[j].Probability {
			return entries[i].Probability > entries[j].Probability
		}
		return entries[i].StudentID > entries[j].StudentID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (c *memoryRiskBoard) GetTop(_ context.Context, limit int) ([]RiskBoardEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := c.ranked()
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (c *memoryRiskBoard) GetRank(_ context.Context, studentID string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.ranked() {
		if e.StudentID == studentID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

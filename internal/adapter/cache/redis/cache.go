// Package redis caches analytics aggregates in Redis.
package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

const questionStatsKey = "analytics:question_stats"

// Cache implements domain.AnalyticsCache on top of a Redis client.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New constructs a Cache with the given address and entry TTL.
func New(addr string, ttl time.Duration) *Cache {
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr}), ttl: ttl}
}

// NewWithClient wraps an existing client, for tests.
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Ping checks connectivity, for readiness probes.
func (c *Cache) Ping(ctx domain.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GetQuestionStats returns cached aggregates; ok is false on a miss.
func (c *Cache) GetQuestionStats(ctx domain.Context) ([]domain.QuestionStats, bool, error) {
	b, err := c.rdb.Get(ctx, questionStatsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("op=cache.get_question_stats: %w", err)
	}
	var stats []domain.QuestionStats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, false, fmt.Errorf("op=cache.get_question_stats: %w", err)
	}
	return stats, true, nil
}

// SetQuestionStats stores aggregates with the configured TTL.
func (c *Cache) SetQuestionStats(ctx domain.Context, stats []domain.QuestionStats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("op=cache.set_question_stats: %w", err)
	}
	if err := c.rdb.Set(ctx, questionStatsKey, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("op=cache.set_question_stats: %w", err)
	}
	return nil
}

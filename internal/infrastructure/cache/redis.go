package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	"github.com/moa-team/moa-backend/pkg/config"
)

// NewRedisClient creates a redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// ReportCache caches finished daily reports so repeat reads skip the database.
// A cache miss is never an error; callers fall through to the repository.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a report cache with the given TTL
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func reportKey(userID, date string) string {
	return fmt.Sprintf("report:%s:%s", userID, date)
}

// Get returns the cached report, or (nil, false) on miss or any redis error
func (c *ReportCache) Get(ctx context.Context, userID, date string) (*entities.EmotionReport, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, reportKey(userID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var report entities.EmotionReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false
	}
	return &report, true
}

// Set stores the report. Errors are dropped; the database copy is canonical.
func (c *ReportCache) Set(ctx context.Context, userID, date string, report *entities.EmotionReport) {
	if c == nil || c.client == nil || report == nil {
		return
	}
	b, err := json.Marshal(report)
	if err != nil {
		return
	}
	c.client.Set(ctx, reportKey(userID, date), b, c.ttl)
}

// Invalidate removes a cached report, used before regeneration
func (c *ReportCache) Invalidate(ctx context.Context, userID, date string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, reportKey(userID, date))
}

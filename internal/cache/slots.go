package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotCache memoizes slot listings per (professional, date, duration). The
// read path is advisory by contract, so entries live behind a short TTL and a
// per professional+date version key that every booking write bumps. A nil
// *SlotCache disables caching; every redis failure falls through to the
// database silently.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewSlotCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *SlotCache {
	return &SlotCache{client: client, ttl: ttl, log: log}
}

func versionKey(professionalID uuid.UUID, date string) string {
	return fmt.Sprintf("slots:ver:%s:%s", professionalID, date)
}

func (c *SlotCache) slotKey(ctx context.Context, professionalID uuid.UUID, date string, durationMinutes int) string {
	ver, err := c.client.Get(ctx, versionKey(professionalID, date)).Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("slots:%s:%s:v%s:%d", professionalID, date, ver, durationMinutes)
}

func (c *SlotCache) Get(ctx context.Context, professionalID uuid.UUID, date string, durationMinutes int) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.slotKey(ctx, professionalID, date, durationMinutes)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("slot cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, professionalID uuid.UUID, date string, durationMinutes int, slots []string) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return
	}

	key := c.slotKey(ctx, professionalID, date, durationMinutes)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug("slot cache write failed", zap.Error(err))
	}
}

// Invalidate bumps the version for every cached duration of the day at once.
// Old entries expire via TTL.
func (c *SlotCache) Invalidate(ctx context.Context, professionalID uuid.UUID, date string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Incr(ctx, versionKey(professionalID, date)).Err(); err != nil {
		c.log.Debug("slot cache invalidation failed", zap.Error(err))
	}
}

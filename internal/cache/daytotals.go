// Package cache holds the redis-backed read caches. Only derived data is
// cached; the store stays the source of truth and every write path
// invalidates the day it touched.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DayTotals is the cached macro rollup for one user-day.
type DayTotals struct {
	Date       string  `json:"date"`
	EntryCount int     `json:"entry_count"`
	CaloriesIn float64 `json:"calories_in"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	FiberG     float64 `json:"fiber_g"`
}

type DayTotalsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDayTotalsCache wraps a redis client. A nil client disables caching;
// every method becomes a no-op miss.
func NewDayTotalsCache(client *redis.Client, ttl time.Duration) *DayTotalsCache {
	return &DayTotalsCache{client: client, ttl: ttl}
}

func key(userID uuid.UUID, date string) string {
	return fmt.Sprintf("daytotals:%s:%s", userID, date)
}

func (c *DayTotalsCache) Get(ctx context.Context, userID uuid.UUID, date string) (*DayTotals, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(userID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var totals DayTotals
	if err := json.Unmarshal(raw, &totals); err != nil {
		return nil, false
	}
	return &totals, true
}

func (c *DayTotalsCache) Set(ctx context.Context, userID uuid.UUID, totals *DayTotals) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(totals)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(userID, totals.Date), raw, c.ttl)
}

func (c *DayTotalsCache) Invalidate(ctx context.Context, userID uuid.UUID, date string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key(userID, date))
}

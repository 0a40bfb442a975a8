package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reviewhub/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// TitleCache is a read-through Redis cache for title payloads. All methods
// are safe on a nil receiver so the API works without Redis configured.
type TitleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTitleCache(rdb *redis.Client, ttl time.Duration) *TitleCache {
	if rdb == nil {
		return nil
	}
	return &TitleCache{rdb: rdb, ttl: ttl}
}

func titleKey(id int64) string {
	return fmt.Sprintf("title:%d", id)
}

// Get returns the cached title or nil on a miss. Cache errors are treated
// as misses.
func (c *TitleCache) Get(ctx context.Context, id int64) *models.Title {
	if c == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, titleKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var t models.Title
	if err := json.Unmarshal(data, &t); err != nil {
		return nil
	}
	return &t
}

// Set stores the title payload, best-effort.
func (c *TitleCache) Set(ctx context.Context, t *models.Title) {
	if c == nil || t == nil {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, titleKey(t.ID), data, c.ttl)
}

// Invalidate drops the cached payload after any mutation that touches the
// title, including review mutations that move its rating.
func (c *TitleCache) Invalidate(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, titleKey(id))
}

// Package cache provides the redis read-through layer in front of the
// rollup store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finlit-cms/backend/internal/application/adapter"
	"github.com/finlit-cms/backend/internal/domain/entity"
)

// CachedRollupStore decorates a RollupStore with a redis read-through
// cache. Reads check redis first and backfill on miss; upserts write
// through and refresh the cache entry. Cache failures degrade to the
// underlying store, never to an error.
type CachedRollupStore struct {
	store  adapter.RollupStore
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRollupStore creates a new CachedRollupStore.
func NewCachedRollupStore(store adapter.RollupStore, client *redis.Client, ttl time.Duration) *CachedRollupStore {
	return &CachedRollupStore{
		store:  store,
		client: client,
		ttl:    ttl,
	}
}

// Upsert writes through to the store and refreshes the cache entry so
// readers observe the new rollup immediately.
func (c *CachedRollupStore) Upsert(ctx context.Context, summary *entity.PeriodSummary) error {
	if err := c.store.Upsert(ctx, summary); err != nil {
		return err
	}
	c.set(ctx, summary)
	return nil
}

// Get returns the cached summary when present, otherwise reads the
// store and backfills.
func (c *CachedRollupStore) Get(ctx context.Context, userID uuid.UUID, year, month int) (*entity.PeriodSummary, error) {
	key := rollupKey(userID, year, month)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var summary entity.PeriodSummary
		if err := json.Unmarshal(payload, &summary); err == nil {
			return &summary, nil
		}
		slog.WarnContext(ctx, "discarding unreadable cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "rollup cache read failed", "error", err, "key", key)
	}

	summary, err := c.store.Get(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	c.set(ctx, summary)
	return summary, nil
}

func (c *CachedRollupStore) set(ctx context.Context, summary *entity.PeriodSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode rollup for cache", "error", err)
		return
	}
	key := rollupKey(summary.UserID, summary.Year, summary.Month)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "rollup cache write failed", "error", err, "key", key)
	}
}

func rollupKey(userID uuid.UUID, year, month int) string {
	return fmt.Sprintf("rollup:%s:%04d:%02d", userID, year, month)
}

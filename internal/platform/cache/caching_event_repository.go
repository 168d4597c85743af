// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"community_backend/internal/feature/events/domain/entity"
	"community_backend/internal/feature/events/usecase"
)

// CachingEventRepository decorates an EventRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Only the read paths are cached; every
// write, including the registration counter, invalidates the event keys so
// listings never serve a stale registered count for long.
type CachingEventRepository struct {
	inner     usecase.EventRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingEventRepositoryがEventRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EventRepository = (*CachingEventRepository)(nil)

// NewCachingEventRepository decorates an EventRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "events".
func NewCachingEventRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EventRepository, namespace string) *CachingEventRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "events"
	}
	return &CachingEventRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List retrieves events, checking cache first then falling back to the database.
func (c *CachingEventRepository) List(ctx context.Context) ([]entity.Event, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Event
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID retrieves one event, checking cache first then falling back to the database.
func (c *CachingEventRepository) FindByID(ctx context.Context, id uint) (*entity.Event, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.eventKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Event
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create inserts an event and invalidates the cached listing.
func (c *CachingEventRepository) Create(ctx context.Context, event *entity.Event) error {
	if err := c.inner.Create(ctx, event); err != nil {
		return err
	}
	c.invalidate(ctx, event.ID)
	return nil
}

// Update persists an event and invalidates its cache entries.
func (c *CachingEventRepository) Update(ctx context.Context, event *entity.Event) error {
	if err := c.inner.Update(ctx, event); err != nil {
		return err
	}
	c.invalidate(ctx, event.ID)
	return nil
}

// Delete removes an event and invalidates its cache entries.
func (c *CachingEventRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// IncrementRegisteredCount adjusts the counter and invalidates the cached
// event so the next read sees the fresh count.
func (c *CachingEventRepository) IncrementRegisteredCount(ctx context.Context, id uint, delta int) (int64, error) {
	matched, err := c.inner.IncrementRegisteredCount(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	if matched > 0 {
		c.invalidate(ctx, id)
	}
	return matched, nil
}

// invalidate drops the event's keys. Best effort: a failed delete only means
// a stale read until the TTL expires.
func (c *CachingEventRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey(), c.eventKey(id)).Err()
}

// listKey generates the cache key for the full listing.
func (c *CachingEventRepository) listKey() string {
	return fmt.Sprintf("%s:list", c.namespace)
}

// eventKey generates the cache key for a single event.
func (c *CachingEventRepository) eventKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

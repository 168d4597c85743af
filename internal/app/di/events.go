package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	eventsadapters "community_backend/internal/feature/events/adapters"
	eventsusecase "community_backend/internal/feature/events/usecase"
	"community_backend/internal/platform/cache"
)

// eventCacheTTL bounds how stale a cached event list may get between
// write-path invalidations.
const eventCacheTTL = time.Minute

// NewEventRepository creates the event store, wrapped in a Redis
// read-through cache. A nil Redis client disables caching.
func NewEventRepository(rdb *redis.Client, db *gorm.DB) eventsusecase.EventRepository {
	inner := eventsadapters.NewEventGorm(db)
	return cache.NewCachingEventRepository(rdb, eventCacheTTL, inner, "events")
}

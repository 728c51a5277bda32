package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"training-quiz/internal/cache"
	"training-quiz/internal/domain"
	"training-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const catalogCacheService = "catalog"

// CachedCourseCatalog is a read-through cache in front of another CourseCatalog.
// Concurrent misses for the same key share one load. Cache failures degrade to a direct
// read; lookups of unknown courses are not cached.
type CachedCourseCatalog struct {
	next  domain.CourseCatalog
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedCourseCatalog(next domain.CourseCatalog, c domain.Cache, ttl time.Duration) *CachedCourseCatalog {
	return &CachedCourseCatalog{next: next, cache: c, ttl: ttl}
}

func courseListKey() string {
	return cache.GenerateCacheKey(catalogCacheService, "courses", "all")
}

func courseKey(courseID string) string {
	return cache.GenerateCacheKey(catalogCacheService, "course", courseID)
}

// ListCourses implements domain.CourseCatalog.
func (c *CachedCourseCatalog) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	key := courseListKey()
	var courses []*domain.Course
	if c.load(ctx, key, &courses) {
		return courses, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		courses, err := c.next.ListCourses(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, courses)
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Course), nil
}

// GetCourse implements domain.CourseCatalog.
func (c *CachedCourseCatalog) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	key := courseKey(courseID)
	var course domain.Course
	if c.load(ctx, key, &course) {
		return &course, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		course, err := c.next.GetCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, course)
		return course, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Course), nil
}

// Invalidate drops the cached list and the given courses.
func (c *CachedCourseCatalog) Invalidate(ctx context.Context, courseIDs ...string) error {
	if err := c.cache.Delete(ctx, courseListKey()); err != nil {
		return err
	}
	for _, id := range courseIDs {
		if err := c.cache.Delete(ctx, courseKey(id)); err != nil {
			return err
		}
	}
	return nil
}

func (c *CachedCourseCatalog) load(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Get().Warn("Discarding undecodable catalog cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CachedCourseCatalog) store(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("Failed to encode catalog cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, string(payload), c.ttl); err != nil {
		logger.Get().Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

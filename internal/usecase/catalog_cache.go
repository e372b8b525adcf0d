package usecase

import (
	"context"
	"time"

	"careerpath/internal/pkg/logger"
)

type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type CatalogNotifier interface {
	NotifyCatalogUpdated(resource, id string)
}

const (
	CacheKeyProfessionTests        = "catalog:profession_tests"
	CacheKeyProfessionDescriptions = "catalog:profession_descriptions"
	CacheKeyCourses                = "catalog:courses"
)

func CacheKeyProfessionTest(id string) string { return "catalog:profession_test:" + id }
func CacheKeyCourse(id string) string         { return "catalog:course:" + id }

// cachedRead serves key from the cache when possible and otherwise stores the
// result of load. Cache failures never fail the request.
func cachedRead[T any](ctx context.Context, c CatalogCache, log *logger.Logger, key string, load func() (T, error)) (T, error) {
	var out T
	if c != nil {
		hit, err := c.GetJSON(ctx, key, &out)
		if err != nil {
			log.Warn("cache read failed", "component", "cache", "key", key, "error", err)
		} else if hit {
			return out, nil
		}
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if c != nil {
		if err := c.SetJSON(ctx, key, out, 0); err != nil {
			log.Warn("cache write failed", "component", "cache", "key", key, "error", err)
		}
	}
	return out, nil
}

func invalidate(ctx context.Context, c CatalogCache, log *logger.Logger, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		log.Warn("cache invalidation failed", "component", "cache", "keys", keys, "error", err)
	}
}

func notify(n CatalogNotifier, resource, id string) {
	if n == nil {
		return
	}
	n.NotifyCatalogUpdated(resource, id)
}

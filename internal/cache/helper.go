package cache

import (
	"context"
	"encoding/json"
	"time"

	"nextstep/internal/observability"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// Cache keys for scholarship reads. Writes to the scholarships table must
// call InvalidateScholarships.
const (
	KeyTopScholarships   = "scholarships:top"
	KeyTotalScholarships = "scholarships:total"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		observability.RedisErrorRate.WithLabelValues("get").Inc()
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := Client.Set(ctx, key, b, ttl).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("set").Inc()
		return err
	}
	return nil
}

// CacheAside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func CacheAside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	span, ctx := observability.NewSpan(ctx, "cache.aside")
	span.AddAttributes(attribute.String("cache.key", key))
	defer span.End()

	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		span.SetError(err)
		return err
	}
	if found {
		span.AddAttributes(attribute.Bool("cache.hit", true))
		observability.ScholarshipCacheHits.WithLabelValues("hit").Inc()
		return nil
	}
	span.AddAttributes(attribute.Bool("cache.hit", false))
	observability.ScholarshipCacheHits.WithLabelValues("miss").Inc()

	if err := fetch(); err != nil {
		span.SetError(err)
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// InvalidateScholarships drops the scholarship read caches. Best-effort;
// a stale window until TTL expiry is acceptable if the delete fails.
func InvalidateScholarships(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Del(ctx, KeyTopScholarships, KeyTotalScholarships).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("del").Inc()
	}
}

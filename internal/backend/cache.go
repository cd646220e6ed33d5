package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bahjat/har-report/backend/internal/model"
	"github.com/Bahjat/har-report/backend/internal/platform/requestid"
	"github.com/Bahjat/har-report/backend/internal/reporter"
)

const keyPrefix = "harreport:analysis:"

// Cache stores successful analysis envelopes by archive path.
type Cache interface {
	Get(ctx context.Context, filePath string) (*model.Envelope, bool, error)
	Set(ctx context.Context, filePath string, env *model.Envelope, ttl time.Duration) error
}

// RedisCache implements Cache on top of Redis.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache returns a Cache backed by the given Redis client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(filePath string) string {
	sum := sha256.Sum256([]byte(filePath))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached envelope for filePath, if any.
func (c *RedisCache) Get(ctx context.Context, filePath string) (*model.Envelope, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(filePath)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var env model.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, err
	}
	return &env, true, nil
}

// Set stores env for filePath for ttl.
func (c *RedisCache) Set(ctx context.Context, filePath string, env *model.Envelope, ttl time.Duration) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(filePath), data, ttl).Err()
}

// CachingProvider serves envelopes from a Cache and falls back to the
// wrapped provider on a miss. Cache failures are logged and never fail the
// request. Only successful envelopes are cached.
type CachingProvider struct {
	next   reporter.AnalysisProvider
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingProvider wraps next with cache.
func NewCachingProvider(next reporter.AnalysisProvider, cache Cache, ttl time.Duration, logger *slog.Logger) *CachingProvider {
	return &CachingProvider{next: next, cache: cache, ttl: ttl, logger: logger}
}

// Analyze returns a cached envelope marked as cached, or asks the wrapped
// provider and caches a successful answer.
func (p *CachingProvider) Analyze(ctx context.Context, filePath string) (*model.Envelope, error) {
	logger := p.logger.With("file_path", filePath, "request_id", requestid.FromContext(ctx))

	cached, ok, err := p.cache.Get(ctx, filePath)
	switch {
	case err != nil:
		logger.Warn("analysis cache lookup failed", "error", err)
	case ok:
		logger.Debug("analysis cache hit")
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	env, err := p.next.Analyze(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if env.Success && env.Data != nil {
		if err := p.cache.Set(ctx, filePath, env, p.ttl); err != nil {
			logger.Warn("analysis cache store failed", "error", err)
		}
	}
	return env, nil
}

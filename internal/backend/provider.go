package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bahjat/har-report/backend/internal/platform/config"
	"github.com/Bahjat/har-report/backend/internal/reporter"
)

const redisPingTimeout = 2 * time.Second

// NewProvider builds the analysis provider described by cfg: the backend
// client, wrapped in a Redis cache when REDIS_URL is set. An unreachable
// Redis is logged and tolerated since the cache fails open. The returned
// cleanup function releases the Redis connection pool.
func NewProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) (reporter.AnalysisProvider, func(), error) {
	client := NewClient(cfg.BackendURL, cfg.AnalysisTimeout)
	if !cfg.CacheEnabled() {
		return client, func() {}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, analysis cache will miss until it recovers", "error", err)
	} else {
		logger.Info("analysis cache enabled", "ttl", cfg.CacheTTL.String())
	}

	cleanup := func() { _ = rdb.Close() }
	return NewCachingProvider(client, NewRedisCache(rdb), cfg.CacheTTL, logger), cleanup, nil
}

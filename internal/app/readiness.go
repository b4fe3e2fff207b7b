package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	rediscache "github.com/balajircs83/AI-Interview-Platform/internal/adapter/cache/redis"
)

// BuildReadinessChecks returns probes for the database and Redis. The Redis
// check is nil when no cache is configured.
func BuildReadinessChecks(pool *pgxpool.Pool, cache *rediscache.Cache) (dbCheck, redisCheck func(ctx context.Context) error) {
	dbCheck = func(ctx context.Context) error { return pool.Ping(ctx) }
	if cache != nil {
		redisCheck = func(ctx context.Context) error { return cache.Ping(ctx) }
	}
	return dbCheck, redisCheck
}

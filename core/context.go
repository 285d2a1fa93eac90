package core

import (
	"context"

	"github.com/huangsam/spacecap/internal/contract"
)

// Context keys for scoring runs
type contextKey string

const (
	cacheManagerKey contextKey = "cacheManager"
	runIDKey        contextKey = "runID"
)

// contextWithCacheManager adds the cache manager to the context
func contextWithCacheManager(ctx context.Context, mgr contract.CacheManager) context.Context {
	return context.WithValue(ctx, cacheManagerKey, mgr)
}

// cacheManagerFromContext retrieves the cache manager from the context
func cacheManagerFromContext(ctx context.Context) contract.CacheManager {
	mgr, _ := ctx.Value(cacheManagerKey).(contract.CacheManager)
	return mgr
}

// withRunID records the history run id in the context
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the history run id stored in the context, if any
func getRunID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(runIDKey).(int64)
	return id, ok && id > 0
}

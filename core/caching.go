package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
)

// currentCacheVersion defines the version of the cached breakdown format
const currentCacheVersion = 1

// cacheMaxAge is how long a cached breakdown stays usable
const cacheMaxAge = 7 * 24 * time.Hour

// CachedScorer wraps ScoreCountry with a breakdown cache keyed by country id,
// input version and profile fingerprint. Countries missing from versions are
// scored directly. A nil store disables caching.
func CachedScorer(store contract.CacheStore, versions map[string]string) CountryScorer {
	if store == nil {
		return ScoreCountry
	}
	return func(raw schema.RawCountryMetrics, profile *schema.ScoringProfile) (schema.SCIBreakdown, error) {
		version, ok := versions[raw.ID]
		if !ok || version == "" {
			return ScoreCountry(raw, profile)
		}

		key := generateCacheKey(raw.ID, version, profile)

		// Check for cache hit
		if result := checkCacheHit(store, key); result != nil {
			return *result, nil
		}

		// Cache miss: compute and store
		return computeAndStore(store, key, raw, profile)
	}
}

// checkCacheHit attempts to retrieve and validate a cached breakdown
func checkCacheHit(store contract.CacheStore, key string) *schema.SCIBreakdown {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var result schema.SCIBreakdown
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore scores the country and stores the breakdown in cache
func computeAndStore(store contract.CacheStore, key string, raw schema.RawCountryMetrics, profile *schema.ScoringProfile) (schema.SCIBreakdown, error) {
	result, err := ScoreCountry(raw, profile)
	if err != nil {
		return schema.SCIBreakdown{}, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn(fmt.Sprintf("Breakdown cache write failed for %s", raw.ID), err)
		}
	}

	return result, nil
}

// generateCacheKey creates a unique key for one country under one profile
func generateCacheKey(countryID, inputVersion string, profile *schema.ScoringProfile) string {
	key := fmt.Sprintf("breakdown:%s:%s:%s", countryID, inputVersion, profile.Fingerprint())
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

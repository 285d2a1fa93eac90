// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/spacecap/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetBreakdownStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking scoring runs and per-country scores.
type HistoryStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(runUUID, profileName string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the scoring run with completion data
	EndRun(runID int64, endTime time.Time, totalCountries int) error

	// RecordCountryScore stores the final scores for a country
	RecordCountryScore(record schema.CountryScoreRecord) error

	// LatestScores returns the most recent recorded overall score per country
	// among completed runs of the named profile
	LatestScores(profileName string) (map[string]float64, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllScoringRuns returns every recorded run ordered by id
	GetAllScoringRuns() ([]schema.ScoringRunRecord, error)

	// GetAllCountryScores returns every recorded country score ordered by run and country
	GetAllCountryScores() ([]schema.CountryScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

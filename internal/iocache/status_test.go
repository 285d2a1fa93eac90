package iocache

import (
	"bytes"
	"testing"
	"time"

	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
)

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    3,
		LastEntryTime:   time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
		OldestEntryTime: time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
		TableSizeBytes:  4096,
	})

	out := buf.String()
	assert.Contains(t, out, "Cache Backend: sqlite")
	assert.Contains(t, out, "Total Entries: 3")
	assert.Contains(t, out, "Last Entry: 2025-05-02 10:00:00")
	assert.Contains(t, out, "Oldest Entry: 2025-05-01 09:30:00")
	assert.Contains(t, out, "Table Size: 4096 bytes")
}

func TestPrintCacheStatusDisconnected(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:              "postgresql",
		Connected:            true,
		TotalRuns:            2,
		LastRunID:            2,
		LastRunTime:          time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		OldestRunTime:        time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC),
		TotalCountriesScored: 18,
		TableSizes:           map[string]int64{countryScoresTable: 18, scoringRunsTable: 2},
	})

	out := buf.String()
	assert.Contains(t, out, "History Backend: postgresql")
	assert.Contains(t, out, "Last Run ID: 2")
	assert.Contains(t, out, "Total Countries Scored: 18")
	assert.Contains(t, out, "  sci_country_scores: 18 rows\n  sci_scoring_runs: 2 rows\n")
}

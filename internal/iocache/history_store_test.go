package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteHistory(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*HistoryStoreImpl)
	require.True(t, ok)
	return impl
}

func scoreRecord(runID int64, id string, overall float64, at time.Time) schema.CountryScoreRecord {
	return schema.CountryScoreRecord{
		RunID:        runID,
		CountryID:    id,
		Region:       "Asia",
		ScoredAt:     at,
		Overall:      overall,
		Tier:         "Established",
		GlobalRank:   1,
		RegionalRank: 1,
		Launch:       overall,
		Independence: 100,
	}
}

// recordRun stores a complete default-profile run with the given overall scores.
func recordRun(t *testing.T, store *HistoryStoreImpl, start time.Time, scores map[string]float64) int64 {
	t.Helper()
	return recordProfileRun(t, store, "default", start, scores)
}

// recordProfileRun stores a complete run of the named profile.
func recordProfileRun(t *testing.T, store *HistoryStoreImpl, profileName string, start time.Time, scores map[string]float64) int64 {
	t.Helper()
	runID, err := store.BeginRun("uuid-"+profileName+"-"+start.Format(time.RFC3339Nano), profileName, start, map[string]any{"workers": 2})
	require.NoError(t, err)
	for id, overall := range scores {
		require.NoError(t, store.RecordCountryScore(scoreRecord(runID, id, overall, start)))
	}
	require.NoError(t, store.EndRun(runID, start.Add(250*time.Millisecond), len(scores)))
	return runID
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginRun("uuid", "default", time.Now(), nil)
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, store.EndRun(id, time.Now(), 0))
	assert.NoError(t, store.RecordCountryScore(schema.CountryScoreRecord{}))

	scores, err := store.LatestScores("default")
	assert.NoError(t, err)
	assert.Empty(t, scores)

	runs, err := store.GetAllScoringRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestHistoryStoreRunLifecycle(t *testing.T) {
	store := newSQLiteHistory(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	runID := recordRun(t, store, start, map[string]float64{"jpn": 52.5, "ind": 48.25})
	assert.Equal(t, int64(1), runID)

	runs, err := store.GetAllScoringRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "default", run.ProfileName)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(250*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(250), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalCountries)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"workers":2}`, *run.ConfigParams)

	scores, err := store.GetAllCountryScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "ind", scores[0].CountryID, "scores are ordered by country id")
	assert.InDelta(t, 48.25, scores[0].Overall, 1e-9)
	assert.InDelta(t, 48.25, scores[0].Launch, 1e-9)
	assert.InDelta(t, 100, scores[0].Independence, 1e-9)
	assert.True(t, start.Equal(scores[0].ScoredAt))
}

func TestHistoryStoreDuplicateScore(t *testing.T) {
	store := newSQLiteHistory(t)
	runID, err := store.BeginRun("uuid", "default", time.Now(), nil)
	require.NoError(t, err)

	record := scoreRecord(runID, "usa", 88, time.Now())
	require.NoError(t, store.RecordCountryScore(record))
	assert.ErrorContains(t, store.RecordCountryScore(record), "usa")
}

func TestHistoryStoreEndUnknownRun(t *testing.T) {
	store := newSQLiteHistory(t)
	assert.ErrorContains(t, store.EndRun(42, time.Now(), 0), "run 42")
}

func TestHistoryStoreLatestScores(t *testing.T) {
	store := newSQLiteHistory(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	recordRun(t, store, base, map[string]float64{"usa": 80, "chn": 70, "ind": 40})
	recordRun(t, store, base.Add(time.Hour), map[string]float64{"usa": 85, "chn": 72})

	// An unfinished run never contributes prior scores
	runID, err := store.BeginRun("in-flight", "default", base.Add(2*time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordCountryScore(scoreRecord(runID, "usa", 10, base.Add(2*time.Hour))))

	scores, err := store.LatestScores("default")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"usa": 85, "chn": 72, "ind": 40}, scores)
}

func TestHistoryStoreLatestScoresByProfile(t *testing.T) {
	store := newSQLiteHistory(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	recordProfileRun(t, store, "default", base, map[string]float64{"usa": 88, "ind": 45})
	recordProfileRun(t, store, "civil", base.Add(time.Hour), map[string]float64{"usa": 40})

	scores, err := store.LatestScores("default")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"usa": 88, "ind": 45}, scores)

	scores, err = store.LatestScores("civil")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"usa": 40}, scores)

	scores, err = store.LatestScores("unknown")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestHistoryStoreGetStatus(t *testing.T) {
	store := newSQLiteHistory(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, map[string]int64{scoringRunsTable: 0, countryScoresTable: 0}, status.TableSizes)

	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recordRun(t, store, first, map[string]float64{"usa": 80, "chn": 70})
	last := recordRun(t, store, first.Add(24*time.Hour), map[string]float64{"usa": 81})

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, last, status.LastRunID)
	assert.True(t, first.Add(24*time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 3, status.TotalCountriesScored)
	assert.Equal(t, int64(3), status.TableSizes[countryScoresTable])
}

func TestHistoryStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	impl, ok := store.(*HistoryStoreImpl)
	require.True(t, ok)
	recordRun(t, impl, time.Now(), map[string]float64{"fra": 47})
	require.NoError(t, store.Close())

	reopened, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	scores, err := reopened.LatestScores("default")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"fra": 47}, scores)
}

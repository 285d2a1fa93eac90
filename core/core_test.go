package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/internal/iocache"
	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDataset = `
version: "test"
countries:
  - id: usa
    name: United States
    region: Americas
    prior_score: 10
    metrics: {launch: 90, human_spaceflight: 90, propulsion: 90, deep_space: 90, satellites: 90, infrastructure: 90, independence: 90}
  - id: chn
    name: China
    region: Asia
    metrics: {launch: 70, human_spaceflight: 70, propulsion: 70, deep_space: 70, satellites: 70, infrastructure: 70, independence: 70}
  - id: ind
    name: India
    region: Asia
    metrics: {launch: 40, human_spaceflight: 40, propulsion: 40, deep_space: 40, satellites: 40, infrastructure: 40, independence: 40}
`

// testConfig writes the test dataset and returns a config pointing at it.
func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))
	return &contract.Config{
		DataPath:    path,
		ProfileName: "direct",
		Profile:     directProfile(),
		Workers:     2,
		Precision:   1,
		Output:      schema.JSONOut,
		OutputFile:  filepath.Join(t.TempDir(), "out.json"),
	}
}

// noStores returns a cache manager with caching and history disabled.
func noStores() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetBreakdownStore").Return(nil)
	mgr.On("GetHistoryStore").Return(nil)
	return mgr
}

func TestLoadRankings(t *testing.T) {
	cfg := testConfig(t)
	mgr := noStores()

	rankings, err := LoadRankings(context.Background(), cfg, mgr)
	require.NoError(t, err)
	require.Len(t, rankings.Breakdowns, 3)
	assert.Equal(t, "usa", rankings.Breakdowns[0].CountryID)
	assert.Equal(t, schema.TrendImproving, rankings.Breakdowns[0].Trend)
	assert.Equal(t, schema.TrendUnknown, rankings.Breakdowns[1].Trend)
	mgr.AssertExpectations(t)
}

func TestLoadRankingsNoDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataPath = ""
	_, err := LoadRankings(context.Background(), cfg, noStores())
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestLoadRankingsPriorsFromHistory(t *testing.T) {
	cfg := testConfig(t)

	history := &iocache.MockHistoryStore{}
	history.On("LatestScores", "direct").Return(map[string]float64{"usa": 99, "chn": 80}, nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetBreakdownStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	rankings, err := LoadRankings(context.Background(), cfg, mgr)
	require.NoError(t, err)

	usa, ok := schema.FindBreakdown(rankings.Breakdowns, "usa")
	require.True(t, ok)
	// Dataset prior wins over history.
	require.NotNil(t, usa.PriorScore)
	assert.InDelta(t, 10.0, *usa.PriorScore, 1e-9)

	chn, ok := schema.FindBreakdown(rankings.Breakdowns, "chn")
	require.True(t, ok)
	assert.Equal(t, schema.TrendDeclining, chn.Trend)

	ind, ok := schema.FindBreakdown(rankings.Breakdowns, "ind")
	require.True(t, ok)
	assert.Equal(t, schema.TrendUnknown, ind.Trend)
}

func TestMergePriorsHistoryError(t *testing.T) {
	history := &iocache.MockHistoryStore{}
	history.On("LatestScores", "default").Return(map[string]float64(nil), errors.New("db down"))

	priors := map[string]float64{"usa": 1}
	assert.Equal(t, priors, mergePriors(priors, history, "default"))
	assert.Equal(t, priors, mergePriors(priors, nil, "default"))
}

func TestGetRankingsResultsRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Region = "asia"
	cfg.ResultLimit = 1

	history := &iocache.MockHistoryStore{}
	history.On("LatestScores", "direct").Return(map[string]float64{}, nil)
	history.On("BeginRun", mock.AnythingOfType("string"), "direct", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
	history.On("RecordCountryScore", mock.MatchedBy(func(r schema.CountryScoreRecord) bool {
		return r.RunID == 7
	})).Return(nil).Times(3)
	history.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 3).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetBreakdownStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	rankings, duration, err := GetRankingsResults(context.Background(), cfg, mgr)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, duration, time.Duration(0))

	// Filter is applied after ranking, so ranks come from the full batch.
	require.Len(t, rankings.Breakdowns, 1)
	assert.Equal(t, "chn", rankings.Breakdowns[0].CountryID)
	assert.Equal(t, 2, rankings.Breakdowns[0].GlobalRank)
	assert.Equal(t, 1, rankings.Breakdowns[0].RegionalRank)
	assert.Equal(t, 3, rankings.Stats.Count)

	history.AssertExpectations(t)
}

func TestRecordRunBeginFailure(t *testing.T) {
	cfg := testConfig(t)
	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("locked"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(history)

	ctx := contextWithCacheManager(context.Background(), mgr)
	recordRun(ctx, cfg, time.Now(), schema.SCIRankings{Breakdowns: []schema.SCIBreakdown{{CountryID: "usa"}}})

	history.AssertNotCalled(t, "RecordCountryScore", mock.Anything)
	history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBreakdownResult(t *testing.T) {
	cfg := testConfig(t)

	cfg.Countries = []string{"IND"}
	b, _, err := GetBreakdownResult(context.Background(), cfg, noStores())
	require.NoError(t, err)
	assert.Equal(t, "ind", b.CountryID)
	assert.Equal(t, 3, b.GlobalRank)
	assert.Equal(t, 2, b.RegionalRank)

	cfg.Countries = []string{"atl"}
	_, _, err = GetBreakdownResult(context.Background(), cfg, noStores())
	assert.ErrorIs(t, err, ErrCountryNotFound)

	cfg.Countries = nil
	_, _, err = GetBreakdownResult(context.Background(), cfg, noStores())
	assert.Error(t, err)
}

func TestGetCompareResults(t *testing.T) {
	cfg := testConfig(t)

	cfg.Countries = []string{"ind", "usa"}
	cmp, _, err := GetCompareResults(context.Background(), cfg, noStores())
	require.NoError(t, err)
	assert.Equal(t, "usa", cmp.CompositeLeader)
	assert.Len(t, cmp.Leaders, len(schema.AllCategories))
	for _, leader := range cmp.Leaders {
		assert.Equal(t, "usa", leader.LeaderID)
	}

	cfg.Countries = []string{"usa"}
	_, _, err = GetCompareResults(context.Background(), cfg, noStores())
	assert.ErrorIs(t, err, algo.ErrTooFewCountries)

	cfg.Countries = []string{"usa", "usa"}
	_, _, err = GetCompareResults(context.Background(), cfg, noStores())
	assert.ErrorIs(t, err, algo.ErrDuplicateCountry)
}

func TestExecutors(t *testing.T) {
	tests := []struct {
		name      string
		countries []string
		exec      ExecutorFunc
	}{
		{name: "rankings", exec: ExecuteRankings},
		{name: "breakdown", countries: []string{"usa"}, exec: ExecuteBreakdown},
		{name: "compare", countries: []string{"usa", "chn"}, exec: ExecuteCompare},
		{name: "weights", exec: ExecuteWeights},
		{name: "tiers", exec: ExecuteTiers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Countries = tt.countries
			require.NoError(t, tt.exec(context.Background(), cfg, noStores()))

			data, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

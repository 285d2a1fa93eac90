package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/spacecap/core"
	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/internal/dataset"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		DataPath:    "../../testdata/countries.yaml",
		ProfileName: schema.DefaultProfileName,
		Profile:     schema.DefaultProfile(),
		Workers:     2,
		Precision:   1,
		ServeAddr:   "127.0.0.1:0",
	}
}

func do(t *testing.T, cfg *contract.Config, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	NewRouter(cfg, nil).ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	rec := do(t, testConfig(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRankings(t *testing.T) {
	t.Run("full batch", func(t *testing.T) {
		rec := do(t, testConfig(), http.MethodGet, "/api/v1/rankings", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		rankings := decode[schema.SCIRankings](t, rec)
		require.NotEmpty(t, rankings.Breakdowns)
		assert.Equal(t, rankings.Stats.Count, len(rankings.Breakdowns))
		for i, b := range rankings.Breakdowns {
			assert.Equal(t, i+1, b.GlobalRank)
		}
	})

	t.Run("region and limit", func(t *testing.T) {
		rec := do(t, testConfig(), http.MethodGet, "/api/v1/rankings?region=asia&limit=1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rankings := decode[schema.SCIRankings](t, rec)
		require.Len(t, rankings.Breakdowns, 1)
		assert.Equal(t, "Asia", rankings.Breakdowns[0].Region)
		assert.Equal(t, 1, rankings.Breakdowns[0].RegionalRank)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := do(t, testConfig(), http.MethodGet, "/api/v1/rankings?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "limit must be between")
	})

	t.Run("no dataset", func(t *testing.T) {
		cfg := testConfig()
		cfg.DataPath = ""
		rec := do(t, cfg, http.MethodGet, "/api/v1/rankings", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing dataset file", func(t *testing.T) {
		cfg := testConfig()
		cfg.DataPath = "../../testdata/does-not-exist.yaml"
		rec := do(t, cfg, http.MethodGet, "/api/v1/rankings", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "does-not-exist.yaml")
	})
}

func TestBreakdown(t *testing.T) {
	rec := do(t, testConfig(), http.MethodGet, "/api/v1/countries/jpn", "")
	require.Equal(t, http.StatusOK, rec.Code)

	b := decode[schema.SCIBreakdown](t, rec)
	assert.Equal(t, "jpn", b.CountryID)
	assert.Len(t, b.Categories, len(schema.AllCategories))
	require.NotNil(t, b.PriorScore)
	assert.InDelta(t, 44.0, *b.PriorScore, 1e-9)

	rec = do(t, testConfig(), http.MethodGet, "/api/v1/countries/atlantis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "atlantis")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"two countries", "ids=usa,fra", http.StatusOK},
		{"single country", "ids=usa", http.StatusBadRequest},
		{"missing ids", "", http.StatusBadRequest},
		{"duplicate ids", "ids=usa,USA", http.StatusBadRequest},
		{"unknown country", "ids=usa,atlantis", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, testConfig(), http.MethodGet, "/api/v1/compare?"+tt.query, "")
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			cmp := decode[schema.SCIComparison](t, rec)
			assert.Equal(t, "usa", cmp.CompositeLeader)
			assert.Len(t, cmp.Leaders, len(schema.AllCategories))
			for _, leader := range cmp.Leaders {
				for _, gap := range leader.Gaps {
					assert.GreaterOrEqual(t, gap.Gap, 0.0)
				}
			}
		})
	}
}

func TestScore(t *testing.T) {
	t.Run("posted metrics", func(t *testing.T) {
		body := `{"id":"atl","name":"Atlantis","region":"Ocean","prior_score":1,"metrics":{"total_launches":5000,"launch_success_rate":100,"launch_vehicle_families":15}}`
		rec := do(t, testConfig(), http.MethodPost, "/api/v1/score", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		b := decode[schema.SCIBreakdown](t, rec)
		assert.Equal(t, "atl", b.CountryID)
		assert.Equal(t, 1, b.GlobalRank)
		assert.InDelta(t, 100, b.CategoryScoreOf(schema.LaunchCategory), 1e-9)
		assert.Equal(t, schema.TrendImproving, b.Trend)
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := do(t, testConfig(), http.MethodPost, "/api/v1/score", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTables(t *testing.T) {
	rec := do(t, testConfig(), http.MethodGet, "/api/v1/weights", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schema.CategoryWeights(), decode[[]schema.CategoryWeight](t, rec))

	rec = do(t, testConfig(), http.MethodGet, "/api/v1/tiers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schema.TierThresholds(), decode[[]schema.TierThreshold](t, rec))
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = []string{"https://dashboard.example.com"}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tiers", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()
	NewRouter(cfg, nil).ServeHTTP(rec, req)

	assert.Equal(t, "https://dashboard.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{eris.Wrap(core.ErrCountryNotFound, "x"), http.StatusNotFound},
		{eris.Wrap(algo.ErrTooFewCountries, "x"), http.StatusBadRequest},
		{eris.Wrap(algo.ErrDuplicateCountry, "x"), http.StatusBadRequest},
		{core.ErrNoDataset, http.StatusServiceUnavailable},
		{eris.Wrap(dataset.ErrDatasetUnavailable, "x"), http.StatusServiceUnavailable},
		{eris.Wrap(dataset.ErrInvalidDataset, "x"), http.StatusServiceUnavailable},
		{eris.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
	}
}

func TestServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, testConfig(), nil) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

// Package core has core logic for scoring, ranking and comparing countries.
package core

import (
	"context"
	"maps"
	"time"

	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/internal/dataset"
	"github.com/huangsam/spacecap/internal/outwriter"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// ErrNoDataset is returned when a command needs country data but none is configured.
var ErrNoDataset = eris.New("no dataset configured; pass --data or set SPACECAP_DATA")

// ExecutorFunc defines the function signature for executing the scoring commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteRankings scores the whole dataset, records the run and prints the ranking.
// It serves as the main entry point for the 'rank' command.
func ExecuteRankings(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	rankings, duration, err := GetRankingsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRankings(rankings, cfg, duration)
}

// ExecuteBreakdown prints the full breakdown of one country ranked within the dataset.
func ExecuteBreakdown(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	b, duration, err := GetBreakdownResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBreakdown(b, cfg, duration)
}

// ExecuteCompare compares two or more countries from the dataset.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	cmp, duration, err := GetCompareResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteComparison(cmp, cfg, duration)
}

// ExecuteWeights prints the effective category weight table.
func ExecuteWeights(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteWeights(cfg.Profile.CategoryWeights(), cfg)
}

// ExecuteTiers prints the effective tier table.
func ExecuteTiers(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteTiers(cfg.Profile.TierThresholds(), cfg)
}

// GetRankingsResults scores and ranks the dataset and records the run in history.
// The region filter and limit are applied after ranking; stats cover the full batch.
func GetRankingsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SCIRankings, time.Duration, error) {
	start := time.Now()
	rankings, err := LoadRankings(ctx, cfg, mgr)
	if err != nil {
		return schema.SCIRankings{}, 0, err
	}
	recordRun(contextWithCacheManager(ctx, mgr), cfg, start, rankings)

	rankings.Breakdowns = schema.FilterBreakdowns(rankings.Breakdowns, cfg.Region, cfg.ResultLimit)
	return rankings, time.Since(start), nil
}

// GetBreakdownResult returns the breakdown of the single country named in cfg.Countries.
func GetBreakdownResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SCIBreakdown, time.Duration, error) {
	start := time.Now()
	if len(cfg.Countries) != 1 {
		return schema.SCIBreakdown{}, 0, eris.Errorf("breakdown needs exactly one country id (received %d)", len(cfg.Countries))
	}
	rankings, err := LoadRankings(ctx, cfg, mgr)
	if err != nil {
		return schema.SCIBreakdown{}, 0, err
	}
	selected, err := SelectBreakdowns(rankings, cfg.Countries)
	if err != nil {
		return schema.SCIBreakdown{}, 0, err
	}
	return selected[0], time.Since(start), nil
}

// GetCompareResults compares the countries named in cfg.Countries.
func GetCompareResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SCIComparison, time.Duration, error) {
	start := time.Now()
	if len(cfg.Countries) < 2 {
		return schema.SCIComparison{}, 0, eris.Wrapf(algo.ErrTooFewCountries, "got %d", len(cfg.Countries))
	}
	rankings, err := LoadRankings(ctx, cfg, mgr)
	if err != nil {
		return schema.SCIComparison{}, 0, err
	}
	selected, err := SelectBreakdowns(rankings, cfg.Countries)
	if err != nil {
		return schema.SCIComparison{}, 0, err
	}
	cmp, err := CompareCountries(selected)
	if err != nil {
		return schema.SCIComparison{}, 0, err
	}
	return cmp, time.Since(start), nil
}

// LoadRankings loads the configured dataset and ranks every country in it.
// Breakdowns are served from the cache when the country's inputs are unchanged.
// Priors come from the dataset first and from score history second.
func LoadRankings(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SCIRankings, error) {
	if cfg.DataPath == "" {
		return schema.SCIRankings{}, ErrNoDataset
	}
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return schema.SCIRankings{}, err
	}

	var store contract.CacheStore
	var history contract.HistoryStore
	if mgr != nil {
		store = mgr.GetBreakdownStore()
		history = mgr.GetHistoryStore()
	}

	opts := RankOptions{
		Workers: cfg.Workers,
		Scorer:  CachedScorer(store, ds.InputVersions()),
	}
	return ComputeRankings(ctx, ds.Metrics(), cfg.Profile, mergePriors(ds.Priors(), history, cfg.ProfileName), opts)
}

// mergePriors fills in priors missing from the dataset with the latest scores
// recorded under the same profile.
func mergePriors(priors map[string]float64, history contract.HistoryStore, profileName string) map[string]float64 {
	if history == nil {
		return priors
	}
	latest, err := history.LatestScores(profileName)
	if err != nil {
		contract.LogWarn("Could not read prior scores from history", err)
		return priors
	}
	merged := make(map[string]float64, len(priors)+len(latest))
	maps.Copy(merged, latest)
	maps.Copy(merged, priors)
	return merged
}

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
)

// recordRun stores a completed ranking in score history, if history is configured.
// Tracking failures are logged and never fail the command.
func recordRun(ctx context.Context, cfg *contract.Config, start time.Time, rankings schema.SCIRankings) {
	mgr := cacheManagerFromContext(ctx)
	if mgr == nil {
		return
	}
	history := mgr.GetHistoryStore()
	if history == nil {
		return
	}

	configParams := map[string]any{
		"data":            cfg.DataPath,
		"profile":         cfg.ProfileName,
		"workers":         cfg.Workers,
		"strength_margin": cfg.Profile.StrengthMargin,
		"trend_threshold": cfg.Profile.TrendThreshold,
		"weights":         cfg.Profile.Categories,
	}
	runID, err := history.BeginRun(uuid.NewString(), cfg.ProfileName, start, configParams)
	if err != nil {
		contract.LogWarn("Score history initialization failed", err)
		return
	}
	ctx = withRunID(ctx, runID)

	scoredAt := time.Now()
	for _, b := range rankings.Breakdowns {
		recordCountryScore(ctx, scoredAt, b)
	}

	if err := history.EndRun(runID, time.Now(), len(rankings.Breakdowns)); err != nil {
		contract.LogWarn("Failed to finalize score history run", err)
	}
}

// recordCountryScore records the final scores of one country under the run in ctx.
func recordCountryScore(ctx context.Context, scoredAt time.Time, b schema.SCIBreakdown) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	mgr := cacheManagerFromContext(ctx)
	if mgr == nil {
		return
	}
	history := mgr.GetHistoryStore()
	if history == nil {
		return
	}

	record := schema.NewCountryScoreRecord(runID, scoredAt, b)
	if err := history.RecordCountryScore(record); err != nil {
		logTrackingError("RecordCountryScore", b.CountryID, err)
	}
}

// logTrackingError logs history tracking errors without disrupting scoring.
func logTrackingError(operation, countryID string, err error) {
	contract.LogWarn(fmt.Sprintf("Score history failed for %s on %s", operation, countryID), err)
}

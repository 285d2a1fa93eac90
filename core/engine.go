package core

import (
	"context"
	"strings"

	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// ErrCountryNotFound is returned when a requested country id is not in the batch.
var ErrCountryNotFound = eris.New("country not found")

// CountryScorer produces the unranked breakdown of one country.
// Implementations must not depend on any other country in the batch.
type CountryScorer func(raw schema.RawCountryMetrics, profile *schema.ScoringProfile) (schema.SCIBreakdown, error)

// RankOptions tunes how a batch is scored.
type RankOptions struct {
	Workers int           // Concurrent scorers, at least 1
	Scorer  CountryScorer // Defaults to ScoreCountry
}

// ValidateProfile runs every load-time integrity check on a scoring profile.
func ValidateProfile(profile *schema.ScoringProfile) error {
	return algo.ValidateProfile(profile)
}

// ScoreCountry computes category scores, the composite and the tier of one
// country. Ranks, trend and strengths are left for the batch pass.
func ScoreCountry(raw schema.RawCountryMetrics, profile *schema.ScoringProfile) (schema.SCIBreakdown, error) {
	if profile == nil {
		return schema.SCIBreakdown{}, eris.Wrap(algo.ErrInvalidProfile, "profile is nil")
	}
	categories := algo.ScoreCategories(raw.Metrics, profile)
	overall := algo.Composite(categories, profile.Categories)
	return schema.SCIBreakdown{
		CountryID:   raw.ID,
		CountryName: raw.Name,
		Region:      raw.Region,
		Overall:     overall,
		Tier:        algo.ClassifyTier(overall, profile.Tiers),
		Categories:  categories,
		Trend:       schema.TrendUnknown,
		Strengths:   []schema.CategoryID{},
		Weaknesses:  []schema.CategoryID{},
	}, nil
}

// ComputeBreakdown scores a single country as a batch of one, so both of
// its ranks are 1.
func ComputeBreakdown(raw schema.RawCountryMetrics, profile *schema.ScoringProfile, prior *float64) (schema.SCIBreakdown, error) {
	if err := algo.ValidateProfile(profile); err != nil {
		return schema.SCIBreakdown{}, err
	}
	b, err := ScoreCountry(raw, profile)
	if err != nil {
		return schema.SCIBreakdown{}, err
	}
	batch := []schema.SCIBreakdown{b}
	algo.AssignRanks(batch)
	finalize(&batch[0], prior, profile)
	return batch[0], nil
}

// ComputeRankings scores every country in parallel, waits for the full set,
// and then ranks the batch. Priors are keyed by country id; countries without
// a prior get an unknown trend.
func ComputeRankings(ctx context.Context, all []schema.RawCountryMetrics, profile *schema.ScoringProfile, priors map[string]float64, opts RankOptions) (schema.SCIRankings, error) {
	if err := algo.ValidateProfile(profile); err != nil {
		return schema.SCIRankings{}, err
	}
	if err := checkUniqueIDs(all); err != nil {
		return schema.SCIRankings{}, err
	}

	scorer := opts.Scorer
	if scorer == nil {
		scorer = ScoreCountry
	}
	workers := max(opts.Workers, 1)

	breakdowns := make([]schema.SCIBreakdown, len(all))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range all {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := scorer(raw, profile)
			if err != nil {
				return eris.Wrapf(err, "score country %q", raw.ID)
			}
			// Each goroutine owns breakdowns[i]
			breakdowns[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return schema.SCIRankings{}, err
	}

	algo.AssignRanks(breakdowns)
	for i := range breakdowns {
		var prior *float64
		if p, ok := priors[breakdowns[i].CountryID]; ok {
			prior = &p
		}
		finalize(&breakdowns[i], prior, profile)
	}

	return schema.SCIRankings{
		Breakdowns: breakdowns,
		Stats:      algo.Summarize(breakdowns),
	}, nil
}

// CompareCountries compares two or more breakdowns category by category.
func CompareCountries(breakdowns []schema.SCIBreakdown) (schema.SCIComparison, error) {
	return algo.Compare(breakdowns)
}

// SelectBreakdowns picks the breakdowns of the given ids, in the order asked.
// Lookups ignore case.
func SelectBreakdowns(rankings schema.SCIRankings, ids []string) ([]schema.SCIBreakdown, error) {
	selected := make([]schema.SCIBreakdown, 0, len(ids))
	for _, id := range ids {
		b, ok := schema.FindBreakdown(rankings.Breakdowns, id)
		if !ok {
			return nil, eris.Wrapf(ErrCountryNotFound, "%q", id)
		}
		selected = append(selected, b)
	}
	return selected, nil
}

// finalize fills in the fields that depend on the prior score and the profile margins.
func finalize(b *schema.SCIBreakdown, prior *float64, profile *schema.ScoringProfile) {
	b.Trend = algo.ClassifyTrend(b.Overall, prior, profile.TrendThreshold)
	b.PriorScore = nil
	b.Delta = nil
	if prior != nil {
		p := *prior
		delta := b.Overall - p
		b.PriorScore = &p
		b.Delta = &delta
	}
	b.Strengths, b.Weaknesses = algo.DetectStrengths(b.Categories, profile.StrengthMargin)
}

// checkUniqueIDs rejects a batch that lists the same country twice.
func checkUniqueIDs(all []schema.RawCountryMetrics) error {
	seen := make(map[string]struct{}, len(all))
	for _, raw := range all {
		key := strings.ToLower(raw.ID)
		if _, dup := seen[key]; dup {
			return eris.Wrapf(algo.ErrDuplicateCountry, "%q", raw.ID)
		}
		seen[key] = struct{}{}
	}
	return nil
}

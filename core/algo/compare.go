package algo

import (
	"slices"

	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// Compare finds the leader of every category among the given breakdowns and
// each country's gap to that leader. Ties go to the alphabetically earlier id.
func Compare(breakdowns []schema.SCIBreakdown) (schema.SCIComparison, error) {
	if len(breakdowns) < 2 {
		return schema.SCIComparison{}, eris.Wrapf(ErrTooFewCountries, "got %d", len(breakdowns))
	}
	seen := make(map[string]struct{}, len(breakdowns))
	for _, b := range breakdowns {
		if _, dup := seen[b.CountryID]; dup {
			return schema.SCIComparison{}, eris.Wrapf(ErrDuplicateCountry, "%q", b.CountryID)
		}
		seen[b.CountryID] = struct{}{}
	}

	result := schema.SCIComparison{
		Breakdowns: slices.Clone(breakdowns),
		Leaders:    make([]schema.CategoryLeader, 0, len(schema.AllCategories)),
	}

	for _, cat := range schema.AllCategories {
		leader := pickLeader(breakdowns, func(b schema.SCIBreakdown) float64 {
			return b.CategoryScoreOf(cat)
		})
		leaderScore := leader.CategoryScoreOf(cat)
		entry := schema.CategoryLeader{
			Category:    cat,
			LeaderID:    leader.CountryID,
			LeaderScore: leaderScore,
			Gaps:        make([]schema.CategoryGap, 0, len(breakdowns)),
		}
		for _, b := range breakdowns {
			score := b.CategoryScoreOf(cat)
			entry.Gaps = append(entry.Gaps, schema.CategoryGap{
				CountryID: b.CountryID,
				Score:     score,
				Gap:       max(leaderScore-score, 0),
			})
		}
		result.Leaders = append(result.Leaders, entry)
	}

	result.CompositeLeader = pickLeader(breakdowns, func(b schema.SCIBreakdown) float64 {
		return b.Overall
	}).CountryID
	return result, nil
}

// pickLeader returns the breakdown with the highest value, ties broken by id.
func pickLeader(breakdowns []schema.SCIBreakdown, value func(schema.SCIBreakdown) float64) schema.SCIBreakdown {
	best := breakdowns[0]
	for _, b := range breakdowns[1:] {
		bv, cur := value(b), value(best)
		if bv > cur || (bv == cur && b.CountryID < best.CountryID) {
			best = b
		}
	}
	return best
}

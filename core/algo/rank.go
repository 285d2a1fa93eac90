package algo

import (
	"sort"
	"strings"

	"github.com/huangsam/spacecap/schema"
)

// rankBefore reports whether a ranks ahead of b: higher overall first,
// then the alphabetically earlier country id.
func rankBefore(a, b schema.SCIBreakdown) bool {
	if a.Overall != b.Overall {
		return a.Overall > b.Overall
	}
	return a.CountryID < b.CountryID
}

// AssignRanks sorts breakdowns into ranking order and assigns global and
// regional ranks. Every global rank 1..N is used exactly once, and each
// region is re-ranked 1..M independently. Region names group case-insensitively.
func AssignRanks(breakdowns []schema.SCIBreakdown) {
	sort.SliceStable(breakdowns, func(i, j int) bool {
		return rankBefore(breakdowns[i], breakdowns[j])
	})

	regional := make(map[string]int)
	for i := range breakdowns {
		breakdowns[i].GlobalRank = i + 1
		region := strings.ToLower(breakdowns[i].Region)
		regional[region]++
		breakdowns[i].RegionalRank = regional[region]
	}
}

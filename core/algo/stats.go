package algo

import (
	"sort"

	"github.com/huangsam/spacecap/schema"
)

// Summarize computes count, mean, median, max and min of overall scores.
func Summarize(breakdowns []schema.SCIBreakdown) schema.RankingStats {
	n := len(breakdowns)
	if n == 0 {
		return schema.RankingStats{}
	}

	values := make([]float64, n)
	var sum float64
	for i, b := range breakdowns {
		values[i] = b.Overall
		sum += b.Overall
	}
	sort.Float64s(values)

	median := values[n/2]
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	}
	return schema.RankingStats{
		Count:  n,
		Mean:   sum / float64(n),
		Median: median,
		Max:    values[n-1],
		Min:    values[0],
	}
}

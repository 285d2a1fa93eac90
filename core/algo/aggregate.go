package algo

import "github.com/huangsam/spacecap/schema"

// AggregateCategory combines a country's normalized metrics for one category
// into a single score using the category-local rule weights.
// A category with no configured metrics scores 0.
func AggregateCategory(cat schema.CategoryID, raw map[string]any, profile *schema.ScoringProfile) schema.CategoryScore {
	names := profile.MetricsFor(cat)
	result := schema.CategoryScore{
		Category: cat,
		Metrics:  make([]schema.MetricContribution, 0, len(names)),
	}

	var total float64
	for _, name := range names {
		rule := profile.Rules[name]
		value := raw[name]
		normalized := Normalize(value, rule)
		contribution := normalized * rule.Weight
		total += contribution
		result.Metrics = append(result.Metrics, schema.MetricContribution{
			Name:         name,
			Raw:          value,
			Normalized:   normalized,
			Weight:       rule.Weight,
			Contribution: contribution,
		})
	}
	result.Score = Clamp100(total)
	return result
}

// ScoreCategories aggregates every category in canonical order.
func ScoreCategories(raw map[string]any, profile *schema.ScoringProfile) []schema.CategoryScore {
	scores := make([]schema.CategoryScore, 0, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		scores = append(scores, AggregateCategory(cat, raw, profile))
	}
	return scores
}

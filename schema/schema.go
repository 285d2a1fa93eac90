// Package schema has configs, models and built-in tables for all parts of spacecap.
package schema

// RawCountryMetrics is the immutable input record for one country.
// Metric values may be numbers, booleans, currency-like strings or nil.
type RawCountryMetrics struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Region  string         `json:"region" yaml:"region"`
	Metrics map[string]any `json:"metrics" yaml:"metrics"`
}

// MetricContribution records how a single raw metric fed its category score.
type MetricContribution struct {
	Name         string  `json:"name"`
	Raw          any     `json:"raw"`
	Normalized   float64 `json:"normalized"`   // Sub-score in [0,100]
	Weight       float64 `json:"weight"`       // Category-local weight
	Contribution float64 `json:"contribution"` // Normalized x Weight
}

// CategoryScore is the computed score of one country in one category.
type CategoryScore struct {
	Category CategoryID           `json:"category"`
	Score    float64              `json:"score"`
	Metrics  []MetricContribution `json:"metrics,omitempty"`
}

// SCIBreakdown is the full scoring result for one country within one batch.
// Rank fields are only meaningful within the batch they were computed in.
type SCIBreakdown struct {
	CountryID    string          `json:"country_id"`
	CountryName  string          `json:"country_name"`
	Region       string          `json:"region"`
	Overall      float64         `json:"overall"`
	Tier         string          `json:"tier"`
	GlobalRank   int             `json:"global_rank"`
	RegionalRank int             `json:"regional_rank"`
	Categories   []CategoryScore `json:"categories"`
	Trend        Trend           `json:"trend"`
	PriorScore   *float64        `json:"prior_score,omitempty"`
	Delta        *float64        `json:"delta,omitempty"`
	Strengths    []CategoryID    `json:"strengths"`
	Weaknesses   []CategoryID    `json:"weaknesses"`
}

// CategoryScoreOf returns the score for the given category, or 0 if absent.
func (b SCIBreakdown) CategoryScoreOf(cat CategoryID) float64 {
	for _, cs := range b.Categories {
		if cs.Category == cat {
			return cs.Score
		}
	}
	return 0
}

// RankingStats summarizes the overall scores of a batch.
type RankingStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
}

// SCIRankings is the result of scoring a full batch of countries.
type SCIRankings struct {
	Breakdowns []SCIBreakdown `json:"breakdowns"` // Descending by overall score
	Stats      RankingStats   `json:"stats"`
}

// CategoryGap is one country's distance to the category leader.
type CategoryGap struct {
	CountryID string  `json:"country_id"`
	Score     float64 `json:"score"`
	Gap       float64 `json:"gap"` // LeaderScore - Score, never negative
}

// CategoryLeader holds the leader of one category within a comparison.
type CategoryLeader struct {
	Category    CategoryID    `json:"category"`
	LeaderID    string        `json:"leader_id"`
	LeaderScore float64       `json:"leader_score"`
	Gaps        []CategoryGap `json:"gaps"`
}

// SCIComparison is the result of comparing two or more breakdowns.
type SCIComparison struct {
	Breakdowns      []SCIBreakdown   `json:"breakdowns"`
	Leaders         []CategoryLeader `json:"leaders"`
	CompositeLeader string           `json:"composite_leader"`
}

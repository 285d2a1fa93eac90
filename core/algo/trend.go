package algo

import "github.com/huangsam/spacecap/schema"

// ClassifyTrend labels the movement from prior to current.
// Deltas within [-threshold, threshold] are stable; no prior is unknown.
func ClassifyTrend(current float64, prior *float64, threshold float64) schema.Trend {
	if prior == nil {
		return schema.TrendUnknown
	}
	delta := current - *prior
	switch {
	case delta > threshold:
		return schema.TrendImproving
	case delta < -threshold:
		return schema.TrendDeclining
	default:
		return schema.TrendStable
	}
}

package algo

import (
	"math"

	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// Composite computes the weighted overall score from category scores.
// Categories absent from scores count as 0.
func Composite(scores []schema.CategoryScore, weights []schema.CategoryWeight) float64 {
	byCategory := make(map[schema.CategoryID]float64, len(scores))
	for _, cs := range scores {
		byCategory[cs.Category] = Clamp100(cs.Score)
	}

	var overall float64
	for _, cw := range weights {
		overall += byCategory[cw.Category] * cw.Weight
	}
	return Clamp100(overall)
}

// ValidateWeights checks that every category appears exactly once with a
// non-negative weight and that the weights sum to 1.0.
func ValidateWeights(weights []schema.CategoryWeight) error {
	seen := make(map[schema.CategoryID]struct{}, len(weights))
	var sum float64
	for _, cw := range weights {
		if _, ok := schema.ValidCategories[cw.Category]; !ok {
			return eris.Wrapf(ErrInvalidWeights, "unknown category %q", cw.Category)
		}
		if _, dup := seen[cw.Category]; dup {
			return eris.Wrapf(ErrInvalidWeights, "category %q listed twice", cw.Category)
		}
		if cw.Weight < 0 || math.IsNaN(cw.Weight) {
			return eris.Wrapf(ErrInvalidWeights, "category %q has invalid weight %v", cw.Category, cw.Weight)
		}
		seen[cw.Category] = struct{}{}
		sum += cw.Weight
	}
	for _, cat := range schema.AllCategories {
		if _, ok := seen[cat]; !ok {
			return eris.Wrapf(ErrInvalidWeights, "category %q has no weight", cat)
		}
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return eris.Wrapf(ErrInvalidWeights, "weights sum to %.6f, expected 1.0", sum)
	}
	return nil
}

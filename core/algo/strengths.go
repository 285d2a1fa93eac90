package algo

import "github.com/huangsam/spacecap/schema"

// marginEpsilon absorbs float error when a score sits exactly on the margin.
const marginEpsilon = 1e-9

// DetectStrengths flags categories at least margin above (strengths) or
// below (weaknesses) the country's own mean category score.
// Results follow the order of scores and are never nil.
func DetectStrengths(scores []schema.CategoryScore, margin float64) (strengths, weaknesses []schema.CategoryID) {
	strengths = []schema.CategoryID{}
	weaknesses = []schema.CategoryID{}
	if len(scores) == 0 {
		return strengths, weaknesses
	}

	var sum float64
	for _, cs := range scores {
		sum += cs.Score
	}
	mean := sum / float64(len(scores))

	for _, cs := range scores {
		diff := cs.Score - mean
		switch {
		case diff >= margin-marginEpsilon:
			strengths = append(strengths, cs.Category)
		case -diff >= margin-marginEpsilon:
			weaknesses = append(weaknesses, cs.Category)
		}
	}
	return strengths, weaknesses
}

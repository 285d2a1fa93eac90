// Package algo has the pure scoring algorithms of the Space Capability Index.
// Nothing here performs I/O or holds state between calls.
package algo

import (
	"math"

	"github.com/rotisserie/eris"
)

// WeightTolerance is the allowed drift of a weight table from 1.0.
const WeightTolerance = 1e-6

// Validation and configuration errors.
var (
	ErrInvalidWeights   = eris.New("invalid category weights")
	ErrInvalidTiers     = eris.New("invalid tier table")
	ErrInvalidRules     = eris.New("invalid normalization rules")
	ErrInvalidProfile   = eris.New("invalid scoring profile")
	ErrTooFewCountries  = eris.New("at least two countries are required")
	ErrDuplicateCountry = eris.New("duplicate country id")
)

// Clamp100 bounds v to [0,100]. NaN maps to 0.
func Clamp100(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

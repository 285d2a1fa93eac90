package algo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// currencySuffixes maps magnitude suffixes to multipliers, longest first.
var currencySuffixes = []struct {
	suffix string
	mult   float64
}{
	{"bn", 1e9},
	{"k", 1e3},
	{"m", 1e6},
	{"b", 1e9},
	{"t", 1e12},
}

// ParseRawValue converts a raw metric value to a number.
// The second return is false when the value is missing or unusable.
func ParseRawValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return finite(float64(v))
	case float64:
		return finite(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		return parseRawString(v)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseRawString accepts booleans ("yes", "true") and currency-like
// amounts such as "$1.5B", "250M" or "1,200".
func parseRawString(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return 0, false
	case "yes", "true":
		return 1, true
	case "no", "false":
		return 0, true
	}

	s = strings.TrimPrefix(s, "usd")
	s = strings.TrimSuffix(s, "usd")
	s = strings.TrimLeft(s, "$€£¥ ")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.TrimSpace(s)

	mult := 1.0
	for _, cs := range currencySuffixes {
		if strings.HasSuffix(s, cs.suffix) {
			mult = cs.mult
			s = strings.TrimSpace(strings.TrimSuffix(s, cs.suffix))
			break
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f * mult)
}

// Normalize maps a raw metric value to a [0,100] sub-score using its rule.
// Missing or unparseable values score 0.
func Normalize(raw any, rule schema.NormalizationRule) float64 {
	v, ok := ParseRawValue(raw)
	if !ok {
		return 0
	}

	var score float64
	switch rule.Kind {
	case schema.LinearRule:
		if rule.Max <= 0 {
			return 0
		}
		score = 100 * v / rule.Max
	case schema.BooleanRule:
		if v > 0 {
			score = 100
		}
	case schema.LogarithmicRule:
		if rule.Max <= 0 {
			return 0
		}
		score = 100 * math.Log1p(max(v, 0)) / math.Log1p(rule.Max)
	case schema.InverseRule:
		span := rule.Max - rule.Min
		if span <= 0 {
			return 0
		}
		score = 100 * (rule.Max - v) / span
	}
	return Clamp100(score)
}

// ValidateRules checks every rule and that each category's local weights sum to 1.0.
// A category without rules is allowed and scores 0.
func ValidateRules(rules map[string]schema.NormalizationRule) error {
	sums := make(map[schema.CategoryID]float64)
	for name, rule := range rules {
		if _, ok := schema.ValidRuleKinds[rule.Kind]; !ok {
			return eris.Wrapf(ErrInvalidRules, "metric %q has unknown kind %q", name, rule.Kind)
		}
		if _, ok := schema.ValidCategories[rule.Category]; !ok {
			return eris.Wrapf(ErrInvalidRules, "metric %q has unknown category %q", name, rule.Category)
		}
		if rule.Weight < 0 {
			return eris.Wrapf(ErrInvalidRules, "metric %q has negative weight %v", name, rule.Weight)
		}
		switch rule.Kind {
		case schema.LinearRule, schema.LogarithmicRule:
			if rule.Max <= 0 {
				return eris.Wrapf(ErrInvalidRules, "metric %q needs a positive max", name)
			}
		case schema.InverseRule:
			if rule.Max <= rule.Min {
				return eris.Wrapf(ErrInvalidRules, "metric %q needs max greater than min", name)
			}
		}
		sums[rule.Category] += rule.Weight
	}
	for cat, sum := range sums {
		if math.Abs(sum-1.0) > WeightTolerance {
			return eris.Wrapf(ErrInvalidRules, "metric weights for %s sum to %.6f, expected 1.0", cat, sum)
		}
	}
	return nil
}

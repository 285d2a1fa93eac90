package algo

import (
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// ClassifyTier returns the first tier, walking the descending table,
// whose minimum score is at or below the given score.
func ClassifyTier(score float64, tiers []schema.TierThreshold) string {
	if len(tiers) == 0 {
		return ""
	}
	for _, t := range tiers {
		if t.MinScore <= score {
			return t.Name
		}
	}
	return tiers[len(tiers)-1].Name
}

// ValidateTiers checks that the table is non-empty, strictly descending,
// within [0,100] and ends with a 0 floor.
func ValidateTiers(tiers []schema.TierThreshold) error {
	if len(tiers) == 0 {
		return eris.Wrap(ErrInvalidTiers, "tier table is empty")
	}
	names := make(map[string]struct{}, len(tiers))
	for i, t := range tiers {
		if t.Name == "" {
			return eris.Wrapf(ErrInvalidTiers, "tier %d has no name", i)
		}
		if _, dup := names[t.Name]; dup {
			return eris.Wrapf(ErrInvalidTiers, "tier %q listed twice", t.Name)
		}
		names[t.Name] = struct{}{}
		if t.MinScore < 0 || t.MinScore > 100 {
			return eris.Wrapf(ErrInvalidTiers, "tier %q minimum %v is outside [0,100]", t.Name, t.MinScore)
		}
		if i > 0 && t.MinScore >= tiers[i-1].MinScore {
			return eris.Wrapf(ErrInvalidTiers, "tier %q is not below %q", t.Name, tiers[i-1].Name)
		}
	}
	if last := tiers[len(tiers)-1]; last.MinScore != 0 {
		return eris.Wrapf(ErrInvalidTiers, "lowest tier %q must have minimum 0", last.Name)
	}
	return nil
}

package algo

import (
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// ValidateProfile runs every load-time integrity check on a scoring profile.
func ValidateProfile(p *schema.ScoringProfile) error {
	if p == nil {
		return eris.Wrap(ErrInvalidProfile, "profile is nil")
	}
	if err := ValidateWeights(p.Categories); err != nil {
		return err
	}
	if err := ValidateTiers(p.Tiers); err != nil {
		return err
	}
	if err := ValidateRules(p.Rules); err != nil {
		return err
	}
	if p.StrengthMargin < 0 {
		return eris.Wrapf(ErrInvalidProfile, "strength margin %v is negative", p.StrengthMargin)
	}
	if p.TrendThreshold < 0 {
		return eris.Wrapf(ErrInvalidProfile, "trend threshold %v is negative", p.TrendThreshold)
	}
	return nil
}

package algo

import (
	"testing"

	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
)

// TestValidateProfile checks the built-in profiles and each failure class.
func TestValidateProfile(t *testing.T) {
	for _, name := range schema.ProfileNames() {
		p, err := schema.LoadProfile(name)
		assert.NoError(t, err)
		assert.NoError(t, ValidateProfile(p), name)
	}

	tests := []struct {
		name   string
		mutate func(*schema.ScoringProfile)
		target error
	}{
		{"weights", func(p *schema.ScoringProfile) { p.Categories[0].Weight = 0.5 }, ErrInvalidWeights},
		{"tiers", func(p *schema.ScoringProfile) { p.Tiers = p.Tiers[:len(p.Tiers)-1] }, ErrInvalidTiers},
		{"rules", func(p *schema.ScoringProfile) {
			r := p.Rules["total_launches"]
			r.Kind = "quadratic"
			p.Rules["total_launches"] = r
		}, ErrInvalidRules},
		{"margin", func(p *schema.ScoringProfile) { p.StrengthMargin = -1 }, ErrInvalidProfile},
		{"threshold", func(p *schema.ScoringProfile) { p.TrendThreshold = -0.5 }, ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := schema.DefaultProfile()
			tt.mutate(p)
			assert.ErrorIs(t, ValidateProfile(p), tt.target)
		})
	}

	assert.ErrorIs(t, ValidateProfile(nil), ErrInvalidProfile)
}

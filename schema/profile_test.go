package schema_test

import (
	"testing"

	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	for _, name := range schema.ProfileNames() {
		t.Run(name, func(t *testing.T) {
			p, err := schema.LoadProfile(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.Len(t, p.Categories, len(schema.AllCategories))
			assert.NotEmpty(t, p.Tiers)
			assert.Equal(t, 0.0, p.Tiers[len(p.Tiers)-1].MinScore)

			sum := 0.0
			for _, cw := range p.Categories {
				sum += cw.Weight
			}
			assert.InDelta(t, 1.0, sum, 1e-6)

			for _, cat := range schema.AllCategories {
				local := 0.0
				for _, m := range p.MetricsFor(cat) {
					local += p.Rules[m].Weight
				}
				assert.InDelta(t, 1.0, local, 1e-6, "category %s", cat)
			}
		})
	}
}

func TestLoadProfileUnknown(t *testing.T) {
	_, err := schema.LoadProfile("does-not-exist")
	assert.Error(t, err)
}

func TestProfileNames(t *testing.T) {
	names := schema.ProfileNames()
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "civil")
}

func TestStaticAccessors(t *testing.T) {
	weights := schema.CategoryWeights()
	require.Len(t, weights, 7)
	assert.Equal(t, schema.LaunchCategory, weights[0].Category)
	assert.Equal(t, 0.20, weights[0].Weight)

	tiers := schema.TierThresholds()
	require.Len(t, tiers, 5)
	assert.Equal(t, "Superpower", tiers[0].Name)
	assert.Equal(t, 80.0, tiers[0].MinScore)
	assert.Equal(t, "Nascent", tiers[4].Name)

	// Callers receive copies.
	weights[0].Weight = 0.99
	tiers[0].MinScore = 1
	assert.Equal(t, 0.20, schema.CategoryWeights()[0].Weight)
	assert.Equal(t, 80.0, schema.TierThresholds()[0].MinScore)
}

func TestProfileClone(t *testing.T) {
	p := schema.DefaultProfile()
	clone := p.Clone()
	clone.Categories[0].Weight = 0
	clone.Rules["total_launches"] = schema.NormalizationRule{Kind: schema.BooleanRule}

	assert.Equal(t, 0.20, p.Categories[0].Weight)
	assert.Equal(t, schema.LogarithmicRule, p.Rules["total_launches"].Kind)
}

func TestProfileFingerprint(t *testing.T) {
	a := schema.DefaultProfile()
	b := schema.DefaultProfile()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	b.StrengthMargin = 12
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestWeightOfAndMetricsFor(t *testing.T) {
	p := schema.DefaultProfile()
	assert.Equal(t, 0.05, p.WeightOf(schema.IndependenceCategory))
	assert.Equal(t, 0.0, p.WeightOf(schema.CategoryID("unknown")))
	assert.Equal(t, []string{"deep_space_missions", "lunar_landing", "mars_mission"}, p.MetricsFor(schema.DeepSpaceCategory))
	assert.Empty(t, p.MetricsFor(schema.CategoryID("unknown")))
}

func TestDisplayIsSeparateFromScoring(t *testing.T) {
	d := schema.Display()
	assert.Len(t, d.Categories, len(schema.AllCategories))
	assert.Equal(t, "Launch Capability", schema.CategoryLabel(schema.LaunchCategory))
	assert.Equal(t, "mystery", schema.CategoryLabel(schema.CategoryID("mystery")))
	assert.NotEmpty(t, schema.TierColor("Superpower"))
	assert.Empty(t, schema.TierColor("Nope"))

	cd, ok := schema.CategoryDisplayOf(schema.SatellitesCategory)
	assert.True(t, ok)
	assert.Equal(t, "Satellites", cd.Label)
}

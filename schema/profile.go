package schema

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultProfileName is the built-in profile used when none is configured.
const DefaultProfileName = "default"

// NormalizationRule describes how one raw metric maps to a [0,100] sub-score.
// Kind selects the variant; Max and Min parameterize it.
type NormalizationRule struct {
	Kind     RuleKind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Category CategoryID `json:"category" yaml:"category" mapstructure:"category"`
	Weight   float64    `json:"weight" yaml:"weight" mapstructure:"weight"` // Local to the category
	Max      float64    `json:"max,omitempty" yaml:"max" mapstructure:"max"`
	Min      float64    `json:"min,omitempty" yaml:"min" mapstructure:"min"`
}

// CategoryWeight is a scoring weight for one category.
type CategoryWeight struct {
	Category CategoryID `json:"category" yaml:"category" mapstructure:"category"`
	Weight   float64    `json:"weight" yaml:"weight" mapstructure:"weight"`
}

// TierThreshold is one row of the tier table; MinScore is inclusive.
type TierThreshold struct {
	Name     string  `json:"name" yaml:"name" mapstructure:"name"`
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score"`
}

// ScoringProfile is the complete scoring configuration consumed by the engine.
// It carries no presentation metadata.
type ScoringProfile struct {
	Name           string                       `json:"name" yaml:"name"`
	Description    string                       `json:"description,omitempty" yaml:"description"`
	StrengthMargin float64                      `json:"strength_margin" yaml:"strength_margin"`
	TrendThreshold float64                      `json:"trend_threshold" yaml:"trend_threshold"`
	Categories     []CategoryWeight             `json:"categories" yaml:"categories"`
	Tiers          []TierThreshold              `json:"tiers" yaml:"tiers"`
	Rules          map[string]NormalizationRule `json:"rules" yaml:"rules"`
}

// Clone returns a deep copy of the profile.
func (p *ScoringProfile) Clone() *ScoringProfile {
	clone := *p
	clone.Categories = slices.Clone(p.Categories)
	clone.Tiers = slices.Clone(p.Tiers)
	clone.Rules = make(map[string]NormalizationRule, len(p.Rules))
	maps.Copy(clone.Rules, p.Rules)
	return &clone
}

// CategoryWeights returns a copy of the category weight table.
func (p *ScoringProfile) CategoryWeights() []CategoryWeight {
	return slices.Clone(p.Categories)
}

// TierThresholds returns a copy of the tier table.
func (p *ScoringProfile) TierThresholds() []TierThreshold {
	return slices.Clone(p.Tiers)
}

// WeightOf returns the weight configured for a category, or 0.
func (p *ScoringProfile) WeightOf(cat CategoryID) float64 {
	for _, cw := range p.Categories {
		if cw.Category == cat {
			return cw.Weight
		}
	}
	return 0
}

// MetricsFor returns the metric names that belong to a category, sorted.
func (p *ScoringProfile) MetricsFor(cat CategoryID) []string {
	var names []string
	for name, rule := range p.Rules {
		if rule.Category == cat {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Fingerprint returns a stable hash of the profile contents.
// Two profiles with the same scoring behavior share a fingerprint.
func (p *ScoringProfile) Fingerprint() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LoadProfile loads a built-in scoring profile by name.
func LoadProfile(name string) (*ScoringProfile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, eris.Wrapf(err, "unknown profile %q", name)
	}
	var p ScoringProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrapf(err, "parse profile %q", name)
	}
	return &p, nil
}

// ProfileNames returns the names of all built-in profiles.
func ProfileNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if n := e.Name(); !e.IsDir() && strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names
}

var (
	defaultProfile *ScoringProfile
	defaultOnce    sync.Once
)

// DefaultProfile returns a copy of the built-in default profile.
// The embedded file is parsed once per process.
func DefaultProfile() *ScoringProfile {
	defaultOnce.Do(func() {
		p, err := LoadProfile(DefaultProfileName)
		if err != nil {
			panic(err)
		}
		defaultProfile = p
	})
	return defaultProfile.Clone()
}

// CategoryWeights returns the built-in category weight table.
func CategoryWeights() []CategoryWeight {
	return DefaultProfile().CategoryWeights()
}

// TierThresholds returns the built-in tier table.
func TierThresholds() []TierThreshold {
	return DefaultProfile().TierThresholds()
}

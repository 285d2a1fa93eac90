package schema

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed display.yaml
var displayYAML []byte

// CategoryDisplay is presentation metadata for a category.
type CategoryDisplay struct {
	Category CategoryID `json:"category" yaml:"category"`
	Label    string     `json:"label" yaml:"label"`
	Icon     string     `json:"icon" yaml:"icon"`
	Color    string     `json:"color" yaml:"color"`
}

// TierDisplay is presentation metadata for a tier.
type TierDisplay struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// DisplayProfile groups all presentation metadata.
type DisplayProfile struct {
	Categories []CategoryDisplay `json:"categories" yaml:"categories"`
	Tiers      []TierDisplay     `json:"tiers" yaml:"tiers"`
}

var (
	display     DisplayProfile
	displayOnce sync.Once
)

// Display returns the built-in presentation metadata.
func Display() DisplayProfile {
	displayOnce.Do(func() {
		if err := yaml.Unmarshal(displayYAML, &display); err != nil {
			panic(err)
		}
	})
	return display
}

// CategoryLabel returns the human label of a category, falling back to its id.
func CategoryLabel(cat CategoryID) string {
	for _, cd := range Display().Categories {
		if cd.Category == cat {
			return cd.Label
		}
	}
	return string(cat)
}

// CategoryDisplayOf returns the display entry of a category.
func CategoryDisplayOf(cat CategoryID) (CategoryDisplay, bool) {
	for _, cd := range Display().Categories {
		if cd.Category == cat {
			return cd, true
		}
	}
	return CategoryDisplay{}, false
}

// TierColor returns the hex color of a tier, or an empty string.
func TierColor(name string) string {
	for _, td := range Display().Tiers {
		if td.Name == name {
			return td.Color
		}
	}
	return ""
}

package contract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// Color variables for console output, ordered from the top tier down.
var tierColors = []*color.Color{
	color.New(color.FgRed, color.Bold),     // top tier represents the strongest signal.
	color.New(color.FgMagenta, color.Bold), // second tier is strong but distinct.
	color.New(color.FgYellow),              // middle tier, not bold.
	color.New(color.FgCyan),                // lower tiers are informational.
	color.New(color.FgHiBlack),
}

// Trend colors for console output.
var (
	ImprovingColor = color.New(color.FgGreen)
	DecliningColor = color.New(color.FgRed)
)

// GetColorTier returns a colored tier name for console output (table).
// The color follows the tier's position in the table, so custom tables color consistently.
func GetColorTier(name string, tiers []schema.TierThreshold) string {
	for i, t := range tiers {
		if t.Name == name {
			return tierColors[min(i, len(tierColors)-1)].Sprint(name)
		}
	}
	return name
}

// GetTrendSymbol returns a short arrow for a trend.
func GetTrendSymbol(trend schema.Trend) string {
	switch trend {
	case schema.TrendImproving:
		return "▲"
	case schema.TrendDeclining:
		return "▼"
	case schema.TrendStable:
		return "="
	default:
		return "?"
	}
}

// GetColorTrend returns a colored trend arrow and label for console output.
func GetColorTrend(trend schema.Trend) string {
	text := GetTrendSymbol(trend) + " " + string(trend)
	switch trend {
	case schema.TrendImproving:
		return ImprovingColor.Sprint(text)
	case schema.TrendDeclining:
		return DecliningColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for breakdown cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".spacecap_cache.db"
	}
	return filepath.Join(homeDir, ".spacecap_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for score history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".spacecap_history.db"
	}
	return filepath.Join(homeDir, ".spacecap_history.db")
}

// TruncateName truncates a display name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, eris.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

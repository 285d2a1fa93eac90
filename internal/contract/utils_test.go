package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorTier(t *testing.T) {
	color.NoColor = true
	tiers := schema.TierThresholds()

	tests := []struct {
		name     string
		tier     string
		expected string
	}{
		{name: "top tier", tier: "Superpower", expected: "Superpower"},
		{name: "floor tier", tier: "Nascent", expected: "Nascent"},
		{name: "unknown tier is returned as is", tier: "Hegemon", expected: "Hegemon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetColorTier(tt.tier, tiers))
		})
	}
}

func TestGetColorTierLongTable(t *testing.T) {
	color.NoColor = true
	tiers := make([]schema.TierThreshold, 8)
	for i := range tiers {
		tiers[i] = schema.TierThreshold{Name: string(rune('A' + i)), MinScore: float64(70 - 10*i)}
	}
	// Tiers past the palette reuse the last color.
	assert.Equal(t, "H", GetColorTier("H", tiers))
}

func TestTrendSymbols(t *testing.T) {
	color.NoColor = true
	tests := []struct {
		trend    schema.Trend
		symbol   string
		expected string
	}{
		{trend: schema.TrendImproving, symbol: "▲", expected: "▲ improving"},
		{trend: schema.TrendDeclining, symbol: "▼", expected: "▼ declining"},
		{trend: schema.TrendStable, symbol: "=", expected: "= stable"},
		{trend: schema.TrendUnknown, symbol: "?", expected: "? unknown"},
	}
	for _, tt := range tests {
		t.Run(string(tt.trend), func(t *testing.T) {
			assert.Equal(t, tt.symbol, GetTrendSymbol(tt.trend))
			assert.Equal(t, tt.expected, GetColorTrend(tt.trend))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, path, f.Name())
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "nope", "out.json"))
		assert.Error(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetCacheDBFilePath(), ".spacecap_cache.db"))
	assert.True(t, strings.HasSuffix(GetHistoryDBFilePath(), ".spacecap_history.db"))
	assert.NotEqual(t, GetCacheDBFilePath(), GetHistoryDBFilePath())
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "short name", input: "India", width: 10, expected: "India"},
		{name: "exact width", input: "Japan", width: 5, expected: "Japan"},
		{name: "truncated", input: "United States", width: 8, expected: "Unite..."},
		{name: "multibyte", input: "Türkiye Cumhuriyeti", width: 7, expected: "Türk..."},
		{name: "width too small", input: "Germany", width: 3, expected: "Germany"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{input: "yes", expected: true},
		{input: "TRUE", expected: true},
		{input: "1", expected: true},
		{input: "No"},
		{input: "false"},
		{input: "0"},
		{input: "", expectError: true},
		{input: "on", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
	assert.Equal(t, []string{"usa", "chn", "ind"}, SplitList("usa, chn,,ind "))
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger("debug", LogFormatConsole))
	assert.NoError(t, InitLogger("warn", LogFormatJSON))
	assert.NoError(t, InitLogger("", LogFormatJSON))
	assert.Error(t, InitLogger("loud", LogFormatJSON))
}

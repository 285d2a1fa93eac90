package algo

import (
	"testing"

	"github.com/huangsam/spacecap/schema"
	"github.com/stretchr/testify/assert"
)

// TestSummarize tests batch statistics.
func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected schema.RankingStats
	}{
		{"empty", nil, schema.RankingStats{}},
		{"single", []float64{42}, schema.RankingStats{Count: 1, Mean: 42, Median: 42, Max: 42, Min: 42}},
		{"odd", []float64{10, 50, 30}, schema.RankingStats{Count: 3, Mean: 30, Median: 30, Max: 50, Min: 10}},
		{"even", []float64{10, 40, 20, 90}, schema.RankingStats{Count: 4, Mean: 40, Median: 30, Max: 90, Min: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := make([]schema.SCIBreakdown, len(tt.scores))
			for i, s := range tt.scores {
				bs[i] = schema.SCIBreakdown{Overall: s}
			}
			assert.Equal(t, tt.expected, Summarize(bs))
		})
	}
}

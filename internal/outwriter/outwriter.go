// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRankings prints the ranked breakdowns using the configured output format.
func (ow *OutWriter) WriteRankings(rankings schema.SCIRankings, cfg *contract.Config, duration time.Duration) error {
	return WriteRankingResults(rankings, cfg, duration)
}

// WriteBreakdown prints a single country breakdown using the configured output format.
func (ow *OutWriter) WriteBreakdown(b schema.SCIBreakdown, cfg *contract.Config, duration time.Duration) error {
	return WriteBreakdownResult(b, cfg, duration)
}

// WriteComparison prints a country comparison using the configured output format.
func (ow *OutWriter) WriteComparison(cmp schema.SCIComparison, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(cmp, cfg, duration)
}

// WriteWeights prints the category weight table using the configured output format.
func (ow *OutWriter) WriteWeights(weights []schema.CategoryWeight, cfg *contract.Config) error {
	return WriteWeightTable(weights, cfg)
}

// WriteTiers prints the tier table using the configured output format.
func (ow *OutWriter) WriteTiers(tiers []schema.TierThreshold, cfg *contract.Config) error {
	return WriteTierTable(tiers, cfg)
}

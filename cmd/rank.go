package cmd

import (
	"github.com/huangsam/spacecap/core"
	"github.com/spf13/cobra"
)

// rankCmd scores and ranks every country in the dataset.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank every country by Space Capability Index.",
	Long: `Score every country in the dataset and rank them from highest to lowest index.

Each country gets:
- Seven category scores and a weighted overall score (0-100)
- A tier such as Superpower or Emerging Power
- A global rank and a rank within its region
- A trend against its prior score (from the dataset or score history)
- Strength and weakness categories relative to its own average

The region filter and limit only trim the output; ranks and statistics
always cover the whole dataset.

Examples:
  # Rank all countries
  spacecap rank --data countries.yaml

  # Top 5 countries in Asia with category columns
  spacecap rank --region Asia --limit 5 --detail

  # Use the civil profile and export JSON
  spacecap rank --profile civil --output json --output-file ranks.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("rankings", core.ExecuteRankings)
	},
}

// breakdownCmd explains the score of one country.
var breakdownCmd = &cobra.Command{
	Use:   "breakdown <country-id>",
	Short: "Show how one country's index is built up.",
	Long: `Show the full breakdown of one country ranked within the dataset.

Displays the overall score, tier, ranks and trend, followed by every
category score with its weight and weighted contribution.
With --detail, each category also lists its raw metrics and sub-scores.

Examples:
  # Explain the score of India
  spacecap breakdown ind --data countries.yaml --detail`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("breakdown", core.ExecuteBreakdown)
	},
}

// weightsCmd prints the category weight table.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the category weights of the active profile.",
	Long: `Print the category weight table used to build the overall score.
Weights always sum to 1.0; overrides from the config file are applied first.

Examples:
  spacecap weights --profile civil`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("weights", core.ExecuteWeights)
	},
}

// tiersCmd prints the tier table.
var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the tier thresholds of the active profile.",
	Long: `Print the tier table from the highest tier down.
A country belongs to the first tier whose minimum score it reaches.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("tiers", core.ExecuteTiers)
	},
}

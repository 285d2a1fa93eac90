package cmd

import (
	"github.com/huangsam/spacecap/core"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor runs a scoring executor and exits on failure.
func runExecutor(name string, executeFunc core.ExecutorFunc) {
	if err := executeFunc(rootCtx, cfg, cacheManager); err != nil {
		contract.LogFatal("Cannot run "+name, err)
	}
}

// compareCmd compares two or more countries category by category.
var compareCmd = &cobra.Command{
	Use:   "compare <country-id> <country-id> [country-id...]",
	Short: "Compare countries category by category.",
	Long: `Compare two or more countries from the dataset and find the leader of every category.

For each category the comparison reports:
- The leading country and its score
- Every other country's gap to the leader (never negative)

The composite leader is the country with the highest overall score.
Ties go to the country whose id sorts first.

Examples:
  # Compare the United States and China
  spacecap compare usa chn --data countries.yaml

  # Export a three-way comparison to CSV
  spacecap compare usa chn ind --output csv --output-file gaps.csv`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("comparison", core.ExecuteCompare)
	},
}

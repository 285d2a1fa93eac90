package cmd

import (
	"github.com/huangsam/spacecap/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Space Capability Index MCP server",
	Long: `Launch an MCP server on stdio so AI agents can rank, explain and compare
countries through standard tools.

Tools: get_rankings, get_breakdown, compare_countries, score_country,
get_weights, get_tiers.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

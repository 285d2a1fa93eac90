// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/spacecap/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Space Capability Index MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Space Capability Index Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_rankings ---
	s.AddTool(mcp.NewTool("get_rankings",
		mcp.WithDescription("Score every country in the dataset and return the global ranking with batch statistics."),
		mcp.WithString("region", mcp.Description("Only return countries in this region (ranks stay global).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetRankings)

	// --- 2. Tool: get_breakdown ---
	s.AddTool(mcp.NewTool("get_breakdown",
		mcp.WithDescription("Return the full category and metric breakdown of one country, ranked within the dataset."),
		mcp.WithString("country_id", mcp.Description("Country identifier, e.g. 'usa'."), mcp.Required()),
	), h.handleGetBreakdown)

	// --- 3. Tool: compare_countries ---
	s.AddTool(mcp.NewTool("compare_countries",
		mcp.WithDescription("Compare two or more countries category by category and report the leader and gaps."),
		mcp.WithString("country_ids", mcp.Description("Comma-separated country identifiers, e.g. 'usa,chn,ind'."), mcp.Required()),
	), h.handleCompareCountries)

	// --- 4. Tool: score_country ---
	s.AddTool(mcp.NewTool("score_country",
		mcp.WithDescription("Score a single country from posted metrics without touching the dataset."),
		mcp.WithString("metrics", mcp.Description("JSON object of raw metric values keyed by metric name."), mcp.Required()),
		mcp.WithString("country_id", mcp.Description("Identifier echoed in the breakdown.")),
		mcp.WithString("name", mcp.Description("Display name echoed in the breakdown.")),
		mcp.WithString("region", mcp.Description("Region echoed in the breakdown.")),
		mcp.WithNumber("prior_score", mcp.Description("Previous overall score used to classify the trend.")),
	), h.handleScoreCountry)

	// --- 5. Tools: get_weights and get_tiers ---
	s.AddTool(mcp.NewTool("get_weights",
		mcp.WithDescription("Return the category weight table of the active scoring profile."),
	), h.handleGetWeights)
	s.AddTool(mcp.NewTool("get_tiers",
		mcp.WithDescription("Return the tier thresholds of the active scoring profile, highest tier first."),
	), h.handleGetTiers)

	return s
}

// StartMCPServer starts the Space Capability Index MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

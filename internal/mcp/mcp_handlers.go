package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/spacecap/core"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// jsonResult renders data as an indented JSON text result.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRankings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if r := request.GetString("region", ""); r != "" {
		cfg.Region = r
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	rankings, _, err := core.GetRankingsResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(rankings)
}

func (h *toolHandler) handleGetBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	id := request.GetString("country_id", "")
	if id == "" {
		return mcp.NewToolResultError("country_id is required"), nil
	}
	cfg.Countries = []string{id}

	b, _, err := core.GetBreakdownResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("breakdown failed: %v", err)), nil
	}
	return jsonResult(b)
}

func (h *toolHandler) handleCompareCountries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Countries = contract.SplitList(request.GetString("country_ids", ""))
	if len(cfg.Countries) < 2 {
		return mcp.NewToolResultError("country_ids must name at least two countries"), nil
	}

	cmp, _, err := core.GetCompareResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(cmp)
}

func (h *toolHandler) handleScoreCountry(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var metrics map[string]any
	if err := json.Unmarshal([]byte(request.GetString("metrics", "")), &metrics); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metrics: %v", err)), nil
	}

	raw := schema.RawCountryMetrics{
		ID:      request.GetString("country_id", "custom"),
		Name:    request.GetString("name", ""),
		Region:  request.GetString("region", ""),
		Metrics: metrics,
	}
	var prior *float64
	if _, ok := request.GetArguments()["prior_score"]; ok {
		p := request.GetFloat("prior_score", 0)
		prior = &p
	}

	b, err := core.ComputeBreakdown(raw, h.baseCfg.Profile, prior)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(b)
}

func (h *toolHandler) handleGetWeights(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.baseCfg.Profile.CategoryWeights())
}

func (h *toolHandler) handleGetTiers(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.baseCfg.Profile.TierThresholds())
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/spacecap/core"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

var errBadRequest = eris.New("bad request")

// ScoreRequest is the body of POST /api/v1/score.
type ScoreRequest struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Region     string         `json:"region"`
	PriorScore *float64       `json:"prior_score"`
	Metrics    map[string]any `json:"metrics"`
}

// Rankings returns the ranked batch, optionally filtered by region and limit.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	q := r.URL.Query()
	if region := q.Get("region"); region != "" {
		cfg.Region = region
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > contract.MaxResultLimit {
			respondError(w, eris.Wrapf(errBadRequest, "limit must be between 0 and %d", contract.MaxResultLimit))
			return
		}
		cfg.ResultLimit = limit
	}

	rankings, _, err := core.GetRankingsResults(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rankings)
}

// Breakdown returns the breakdown of one country.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	cfg.Countries = []string{chi.URLParam(r, "id")}

	b, _, err := core.GetBreakdownResult(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// Compare compares the countries listed in the ids query parameter.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	cfg.Countries = contract.SplitList(r.URL.Query().Get("ids"))

	cmp, _, err := core.GetCompareResults(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cmp)
}

// Score scores posted metrics as a batch of one.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreBody)).Decode(&req); err != nil {
		respondError(w, eris.Wrapf(errBadRequest, "invalid body: %v", err))
		return
	}
	if req.ID == "" {
		req.ID = "custom"
	}

	raw := schema.RawCountryMetrics{ID: req.ID, Name: req.Name, Region: req.Region, Metrics: req.Metrics}
	b, err := core.ComputeBreakdown(raw, h.baseCfg.Profile, req.PriorScore)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// Weights returns the category weight table of the active profile.
func (h *Handler) Weights(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.baseCfg.Profile.CategoryWeights())
}

// Tiers returns the tier table of the active profile.
func (h *Handler) Tiers(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.baseCfg.Profile.TierThresholds())
}

package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/traintrack/traintrack-api/internal/engine"
	"github.com/traintrack/traintrack-api/internal/types"
)

// handleRecommendations runs one scoring request: validate the selection,
// build the requirement index from the catalog, score, classify and triage.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	// Count-bounds validation short-circuits before any catalog read.
	sel := engine.NewSelection(req.Subjects, req.TechnicalSkills, req.NonTechnicalSkills)
	if err := engine.ValidateSelection(sel, req.IsFallbackRetry); err != nil {
		s.handleError(w, err)
		return
	}

	rows, err := s.catalog.FetchRequirements(ctx)
	if err != nil {
		s.handleError(w, err)
		return
	}
	idx, err := engine.BuildIndex(rows)
	if err != nil {
		s.handleError(w, err)
		return
	}

	result, err := engine.Recommend(idx, sel, req.IsFallbackRetry, engine.TriageOptions{
		IncludeNoMatch:      s.includeNoMatch,
		PreviousFallbackIDs: toIDSet(req.PreviousFallbackIDs),
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := buildRecommendationResponse(result)
	for _, p := range resp.RecommendedPositions {
		s.metrics.TiersReturned.WithLabelValues(p.Tier).Inc()
	}

	// History persistence is best-effort; a storage hiccup must not cost the
	// candidate their result.
	if req.UserID != "" && s.history != nil {
		if err := s.history.SaveResult(ctx, req.UserID, &req, &resp); err != nil {
			s.logger.Warn("failed to save result history",
				zap.String("user_id", req.UserID), zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGapAnalysis reports the attributes missing against the candidate's
// best fallback-tier position.
func (s *Server) handleGapAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.GapAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	rows, err := s.catalog.FetchRequirements(ctx)
	if err != nil {
		s.handleError(w, err)
		return
	}
	idx, err := engine.BuildIndex(rows)
	if err != nil {
		s.handleError(w, err)
		return
	}

	sel := engine.NewSelection(req.Subjects, req.TechnicalSkills, req.NonTechnicalSkills)
	gap := engine.AnalyzeGap(idx, engine.Score(idx, sel), sel)
	if !gap.Applicable {
		s.jsonResponse(w, http.StatusOK, types.GapAnalysisResponse{
			Applicable: false,
			Missing:    emptyMissing(),
		})
		return
	}

	names, err := s.catalog.FetchAttributeNames(ctx, gap.MissingAttributeIDs())
	if err != nil {
		s.handleError(w, err)
		return
	}
	nameByID := make(map[int64]string, len(names))
	for _, n := range names {
		nameByID[n.ID] = n.Name
	}

	s.jsonResponse(w, http.StatusOK, types.GapAnalysisResponse{
		Applicable:   true,
		PositionID:   gap.PositionID,
		PositionName: gap.PositionName,
		Missing: types.MissingAttributes{
			Subjects:           labelAttributes(gap.Subjects, nameByID),
			TechnicalSkills:    labelAttributes(gap.TechnicalSkills, nameByID),
			NonTechnicalSkills: labelAttributes(gap.NonTechnicalSkills, nameByID),
		},
	})
}

func buildRecommendationResponse(result engine.TriageResult) types.RecommendationResponse {
	positions := make([]types.RecommendedPosition, 0, len(result.Positions))
	for _, p := range result.Positions {
		positions = append(positions, types.RecommendedPosition{
			PositionID:                     p.PositionID,
			PositionName:                   p.PositionName,
			Tier:                           string(p.Fit),
			MatchScorePercentage:           p.OverallPercentage(),
			SubjectFitPercentage:           p.Subjects.Percentage(),
			TechnicalSkillFitPercentage:    p.TechnicalSkills.Percentage(),
			NonTechnicalSkillFitPercentage: p.NonTechnicalSkills.Percentage(),
		})
	}
	return types.RecommendationResponse{
		FallbackTriggered:    result.FallbackTriggered,
		FallbackPossible:     result.FallbackPossible,
		WasFallbackPromoted:  result.WasPromotedFromFallback,
		RecommendedPositions: positions,
	}
}

func labelAttributes(ids []int64, nameByID map[int64]string) []types.MissingAttribute {
	attrs := make([]types.MissingAttribute, 0, len(ids))
	for _, id := range ids {
		attrs = append(attrs, types.MissingAttribute{ID: id, Name: nameByID[id]})
	}
	return attrs
}

func emptyMissing() types.MissingAttributes {
	return types.MissingAttributes{
		Subjects:           []types.MissingAttribute{},
		TechnicalSkills:    []types.MissingAttribute{},
		NonTechnicalSkills: []types.MissingAttribute{},
	}
}

func toIDSet(ids []int64) map[int64]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/traintrack/traintrack-api/internal/types"
)

// handleListMajors returns the study programs for the first wizard step.
func (s *Server) handleListMajors(w http.ResponseWriter, r *http.Request) {
	majors, err := s.catalog.ListMajors(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	if majors == nil {
		majors = []types.Major{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"majors": majors, "count": len(majors)})
}

// handleListSubjectCategories returns subject groupings with display metadata.
func (s *Server) handleListSubjectCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListSubjectCategories(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	if categories == nil {
		categories = []types.SubjectCategory{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"categories": categories, "count": len(categories)})
}

// handleListSubjects returns subjects for the requested categories, grouped
// by category.
func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid category id format")
		return
	}
	if len(ids) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "ids query parameter is required")
		return
	}

	groups, err := s.catalog.ListSubjectsByCategories(r.Context(), ids)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"groups": emptyIfNilGroups(groups)})
}

// handleListTechnicalSkills returns technical skills mapped to the requested
// subject categories.
func (s *Server) handleListTechnicalSkills(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("category_ids"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid category id format")
		return
	}
	if len(ids) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "category_ids query parameter is required")
		return
	}

	groups, err := s.catalog.ListTechnicalSkills(r.Context(), ids)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"groups": emptyIfNilGroups(groups)})
}

// handleListNonTechnicalSkills returns the flat non-technical skill list.
func (s *Server) handleListNonTechnicalSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.catalog.ListNonTechnicalSkills(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	if skills == nil {
		skills = []types.AttributeRef{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": skills, "count": len(skills)})
}

// handleSavePreferences validates the advanced-preferences step and echoes
// the accepted values.
func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var req types.PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid preferences: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, req)
}

// handleSummary builds a human-readable recap of the wizard selections.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	major, err := s.catalog.GetMajorName(ctx, req.MajorID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	summary := types.Summary{
		FullName:           req.FullName,
		Gender:             req.Gender,
		Major:              major,
		Subjects:           []types.AttributeGroup{},
		TechnicalSkills:    []types.AttributeGroup{},
		NonTechnicalSkills: []string{},
		Preferences:        req.Preferences,
	}

	if len(req.Subjects) > 0 {
		groups, err := s.catalog.ListSubjectsByIDs(ctx, req.Subjects)
		if err != nil {
			s.handleError(w, err)
			return
		}
		summary.Subjects = emptyIfNilGroups(groups)
	}
	if len(req.TechnicalSkills) > 0 {
		groups, err := s.catalog.ListTechnicalSkillsByIDs(ctx, req.TechnicalSkills)
		if err != nil {
			s.handleError(w, err)
			return
		}
		summary.TechnicalSkills = emptyIfNilGroups(groups)
	}
	if len(req.NonTechnicalSkills) > 0 {
		names, err := s.catalog.FetchAttributeNames(ctx, req.NonTechnicalSkills)
		if err != nil {
			s.handleError(w, err)
			return
		}
		for _, n := range names {
			if n.Category == string(types.CategoryNonTechnicalSkill) {
				summary.NonTechnicalSkills = append(summary.NonTechnicalSkills, n.Name)
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"summary": summary})
}

// parseIDList parses a comma-separated id list query parameter.
func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func emptyIfNilGroups(groups []types.AttributeGroup) []types.AttributeGroup {
	if groups == nil {
		return []types.AttributeGroup{}
	}
	return groups
}

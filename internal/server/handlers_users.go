package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/traintrack/traintrack-api/internal/history"
	"github.com/traintrack/traintrack-api/internal/server/middleware"
)

// GuestResponse carries a freshly minted guest identity and its session
// token.
type GuestResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// handleGuest generates an opaque guest identity so candidates can use the
// wizard without an account.
func (s *Server) handleGuest(w http.ResponseWriter, _ *http.Request) {
	userID := "guest_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]

	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GuestResponse{UserID: userID, Token: token})
}

// handleListResults returns a user's stored scoring runs, newest first. The
// caller must present the session token issued for that user.
func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "User ID is required")
		return
	}

	authedID, ok := middleware.UserIDFromContext(r.Context())
	if !ok || authedID != userID {
		s.errorResponse(w, http.StatusForbidden, "Token does not match user")
		return
	}

	if s.history == nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{"trials": []history.Result{}})
		return
	}

	results, err := s.history.ListResults(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if results == nil {
		results = []history.Result{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"trials": results})
}

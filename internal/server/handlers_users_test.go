package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traintrack/traintrack-api/internal/history"
)

func TestGuest_IssuesIdentityAndToken(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, nil)

	rec := doRequest(s, http.MethodGet, "/guest", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GuestResponse
	decodeJSON(t, rec, &resp)

	assert.True(t, strings.HasPrefix(resp.UserID, "guest_"))
	assert.Len(t, resp.UserID, len("guest_")+8)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
}

func authedRequest(s *Server, userID, path string) *httptest.ResponseRecorder {
	token, _ := s.jwtService.GenerateToken(userID)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestListResults(t *testing.T) {
	hist := &fakeHistory{results: []history.Result{
		{
			ID:          1,
			UserID:      "guest_abc12345",
			Submission:  json.RawMessage(`{"subjects":[100]}`),
			Result:      json.RawMessage(`{"fallbackTriggered":false}`),
			SubmittedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
	}}
	s := newTestServer(t, &fakeCatalog{}, hist)

	rec := authedRequest(s, "guest_abc12345", "/results/guest_abc12345")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Trials []history.Result `json:"trials"`
	}
	decodeJSON(t, rec, &body)
	require.Len(t, body.Trials, 1)
	assert.Equal(t, "guest_abc12345", body.Trials[0].UserID)
}

func TestListResults_EmptyHistoryIsAnEmptyList(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, &fakeHistory{})

	rec := authedRequest(s, "guest_abc12345", "/results/guest_abc12345")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trials":[]`)
}

func TestListResults_TokenUserMismatch(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, &fakeHistory{})

	rec := authedRequest(s, "guest_other000", "/results/guest_abc12345")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListResults_RequiresToken(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, &fakeHistory{})

	rec := doRequest(s, http.MethodGet, "/results/guest_abc12345", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListResults_RejectsGarbageToken(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, &fakeHistory{})

	req := httptest.NewRequest(http.MethodGet, "/results/guest_abc12345", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

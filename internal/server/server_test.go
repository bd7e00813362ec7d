package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traintrack/traintrack-api/internal/catalog"
	"github.com/traintrack/traintrack-api/internal/config"
	"github.com/traintrack/traintrack-api/internal/engine"
	"github.com/traintrack/traintrack-api/internal/history"
	"github.com/traintrack/traintrack-api/internal/types"
)

// fakeCatalog is an in-memory CatalogStore for handler tests.
type fakeCatalog struct {
	requirements []engine.RequirementRow
	names        []catalog.AttributeName
	majors       []types.Major
	categories   []types.SubjectCategory
	groups       []types.AttributeGroup
	skills       []types.AttributeRef
	majorName    string
	err          error
}

func (f *fakeCatalog) FetchRequirements(context.Context) ([]engine.RequirementRow, error) {
	return f.requirements, f.err
}

func (f *fakeCatalog) FetchAttributeNames(context.Context, []int64) ([]catalog.AttributeName, error) {
	return f.names, f.err
}

func (f *fakeCatalog) ListMajors(context.Context) ([]types.Major, error) {
	return f.majors, f.err
}

func (f *fakeCatalog) ListSubjectCategories(context.Context) ([]types.SubjectCategory, error) {
	return f.categories, f.err
}

func (f *fakeCatalog) ListSubjectsByCategories(context.Context, []int64) ([]types.AttributeGroup, error) {
	return f.groups, f.err
}

func (f *fakeCatalog) ListTechnicalSkills(context.Context, []int64) ([]types.AttributeGroup, error) {
	return f.groups, f.err
}

func (f *fakeCatalog) ListNonTechnicalSkills(context.Context) ([]types.AttributeRef, error) {
	return f.skills, f.err
}

func (f *fakeCatalog) ListSubjectsByIDs(context.Context, []int64) ([]types.AttributeGroup, error) {
	return f.groups, f.err
}

func (f *fakeCatalog) ListTechnicalSkillsByIDs(context.Context, []int64) ([]types.AttributeGroup, error) {
	return f.groups, f.err
}

func (f *fakeCatalog) GetMajorName(context.Context, int64) (string, error) {
	return f.majorName, f.err
}

// fakeHistory records SaveResult calls and serves canned results.
type fakeHistory struct {
	saved   []string
	results []history.Result
	err     error
}

func (f *fakeHistory) SaveResult(_ context.Context, userID string, _, _ any) error {
	f.saved = append(f.saved, userID)
	return f.err
}

func (f *fakeHistory) ListResults(_ context.Context, _ string) ([]history.Result, error) {
	return f.results, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", ExpirationHours: 1},
		Engine: config.EngineConfig{IncludeNoMatch: true},
	}
}

func newTestServer(t *testing.T, store *fakeCatalog, hist *fakeHistory) *Server {
	t.Helper()
	return New(testConfig(), store, hist, zap.NewNop())
}

// doRequest drives the full handler chain, middleware included.
func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, nil)

	rec := doRequest(s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, nil)

	rec := doRequest(s, http.MethodOptions, "/recommendations", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{}, nil)

	doRequest(s, http.MethodGet, "/health", nil)
	rec := doRequest(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "traintrack_http_requests_total")
}

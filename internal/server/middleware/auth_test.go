package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct{ userID string }

func (c *stubClaims) GetUserID() string { return c.userID }

type stubValidator struct {
	userID string
	err    error
}

func (v *stubValidator) ValidateToken(string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{userID: v.userID}, nil
}

func runAuth(validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, string, bool) {
	var gotID string
	var gotOK bool
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/results/u1", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotID, gotOK
}

func TestAuth_ValidToken(t *testing.T) {
	rec, userID, ok := runAuth(&stubValidator{userID: "u1"}, "Bearer sometoken")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
}

func TestAuth_CaseInsensitiveBearer(t *testing.T) {
	rec, _, ok := runAuth(&stubValidator{userID: "u1"}, "bearer sometoken")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _, _ := runAuth(&stubValidator{userID: "u1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"sometoken", "Basic sometoken", "Bearer "} {
		rec, _, _ := runAuth(&stubValidator{userID: "u1"}, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	rec, _, _ := runAuth(&stubValidator{err: errors.New("expired")}, "Bearer sometoken")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}

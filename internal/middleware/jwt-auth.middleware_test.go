package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model/response"
	"github.com/duccv/weather-tracker/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]string

func (s stubVerifier) ValidateToken(token string) (string, error) {
	if subject, ok := s[token]; ok {
		return subject, nil
	}
	return "", errors.New("bad token")
}

func newGateEngine(reached *bool) *gin.Engine {
	gate := NewJWTAuthMiddleware(stubVerifier{"good": "alice"}, apperror.NewTranslator(nil), nil)

	r := gin.New()
	r.Use(CorrelationIDMiddleware(), gate.Authenticate())
	handler := func(c *gin.Context) {
		*reached = true
		identity := IdentityFrom(c)
		if identity == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		fromCtx, ok := security.IdentityFromContext(c.Request.Context())
		if !ok || fromCtx.Subject != identity.Subject {
			c.String(http.StatusInternalServerError, "identity not in context")
			return
		}
		c.String(http.StatusOK, identity.Subject)
	}
	r.GET("/v1/api/weather/history/user/:username", handler)
	r.POST(constant.RegisterPath, handler)
	r.POST(constant.TokenPath, handler)
	r.GET("/health", handler)
	r.GET("/swagger/*any", handler)
	r.GET("/v1/api/auth/register/extra", handler)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ApiError {
	t.Helper()
	var apiErr response.ApiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestGateRejectsMissingToken(t *testing.T) {
	var reached bool
	r := newGateEngine(&reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/api/weather/history/user/alice", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)

	apiErr := decodeError(t, w)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, constant.LabelAuthentication, apiErr.Error)
	assert.Equal(t, constant.MsgMissingToken, apiErr.Message)
	assert.Equal(t, "/v1/api/weather/history/user/alice", apiErr.Path)
	assert.NotEmpty(t, apiErr.TraceID)
}

func TestGateRejectsMalformedHeader(t *testing.T) {
	for _, header := range []string{"good", "Basic good", "bearer good", "Bearer "} {
		var reached bool
		r := newGateEngine(&reached)

		req := httptest.NewRequest(http.MethodGet, "/v1/api/weather/history/user/alice", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.False(t, reached, header)
		assert.Equal(t, constant.MsgMissingToken, decodeError(t, w).Message, header)
	}
}

func TestGateRejectsInvalidToken(t *testing.T) {
	var reached bool
	r := newGateEngine(&reached)

	req := httptest.NewRequest(http.MethodGet, "/v1/api/weather/history/user/alice", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	assert.Equal(t, constant.MsgInvalidToken, decodeError(t, w).Message)
}

func TestGateAuthenticates(t *testing.T) {
	var reached bool
	r := newGateEngine(&reached)

	req := httptest.NewRequest(http.MethodGet, "/v1/api/weather/history/user/alice", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Equal(t, "alice", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(constant.HeaderCorrelationID))
}

func TestGateSkipsAllowList(t *testing.T) {
	for _, target := range []struct{ method, path string }{
		{http.MethodPost, constant.RegisterPath},
		{http.MethodPost, constant.TokenPath},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/swagger/index.html"},
	} {
		var reached bool
		r := newGateEngine(&reached)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(target.method, target.path, nil))

		assert.Equal(t, http.StatusOK, w.Code, target.path)
		assert.True(t, reached, target.path)
		assert.Equal(t, "anonymous", w.Body.String(), target.path)
	}
}

func TestGateAuthPathsAreExact(t *testing.T) {
	var reached bool
	r := newGateEngine(&reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/api/auth/register/extra", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestCorrelationIDIsPropagated(t *testing.T) {
	r := gin.New()
	r.Use(CorrelationIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, CorrelationID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(constant.HeaderCorrelationID, "cid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "cid-42", w.Body.String())
	assert.Equal(t, "cid-42", w.Header().Get(constant.HeaderCorrelationID))
}

func TestAuthStateString(t *testing.T) {
	assert.Equal(t, "SKIPPED", AuthSkipped.String())
	assert.Equal(t, "REJECTED", AuthRejected.String())
	assert.Equal(t, "AUTHENTICATED", AuthAuthenticated.String())
	assert.Equal(t, "UNCHECKED", AuthUnchecked.String())
}

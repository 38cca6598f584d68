package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/duccv/weather-tracker/internal/apperror"
)

func TestRequestLoggerRecordsAuthenticatedUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	cfg := DefaultMiddlewareConfig()
	gate := NewJWTAuthMiddleware(stubVerifier{"good": "alice"}, apperror.NewTranslator(nil), cfg)

	r := gin.New()
	r.Use(CorrelationIDMiddleware(), NewLoggingMiddleware(cfg).RequestLogger(), gate.Authenticate())
	r.GET("/v1/api/weather/history/user/:username", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/api/weather/history/user/alice", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(httptest.NewRecorder(), req)

	completed := logs.FilterMessage("Request completed").All()
	require.Len(t, completed, 1)
	fields := completed[0].ContextMap()
	assert.Equal(t, "alice", fields["username"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.NotEmpty(t, fields["correlation_id"])
}

package http_server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duccv/weather-tracker/config"
	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model/response"
)

func testEnv() *config.Env {
	return &config.Env{
		AppConfig: config.AppConfig{Environment: "test"},
		CORSConfig: config.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
		},
	}
}

func TestHealth(t *testing.T) {
	s := New(testEnv(), Port("8080"), Timeout(time.Second))
	assert.Equal(t, ":8080", s.address)

	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestShutdownBeforeStart(t *testing.T) {
	s := New(testEnv())
	assert.NoError(t, s.Shutdown())
}

func TestTimeoutWritesApiError(t *testing.T) {
	s := New(testEnv(), Timeout(20*time.Millisecond), Translator(apperror.NewTranslator(apperror.DefaultTable())))
	s.App.GET("/slow", func(c *gin.Context) {
		time.Sleep(100 * time.Millisecond)
		c.String(http.StatusOK, "late")
	})

	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	require.Equal(t, http.StatusRequestTimeout, w.Code)
	var apiErr response.ApiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr), w.Body.String())
	assert.Equal(t, http.StatusRequestTimeout, apiErr.Status)
	assert.Equal(t, constant.LabelTimeout, apiErr.Error)
	assert.Equal(t, constant.MsgRequestTimeout, apiErr.Message)
	assert.Equal(t, "/slow", apiErr.Path)
	assert.NotEmpty(t, apiErr.TraceID)
	assert.False(t, apiErr.Timestamp.IsZero())
}

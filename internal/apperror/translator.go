package apperror

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/model/response"
)

// Translator is the boundary that turns any error into an ApiError.
type Translator struct {
	table *Table
	now   func() time.Time
}

func NewTranslator(table *Table) *Translator {
	if table == nil {
		table = DefaultTable()
	}
	return &Translator{table: table, now: time.Now}
}

func (t *Translator) Translate(err error, path string) response.ApiError {
	rule, appErr := t.table.Lookup(err)

	message := rule.Message
	var fields []response.ValidationError
	if appErr != nil {
		if message == "" {
			message = appErr.Message
		}
		fields = appErr.Fields
	}

	apiErr := response.ApiError{
		Timestamp: t.now(),
		Status:    rule.Status,
		Error:     rule.Label,
		Message:   message,
		Path:      path,
		Errors:    fields,
		TraceID:   uuid.NewString(),
	}

	logFields := []zap.Field{
		zap.String("traceId", apiErr.TraceID),
		zap.String("path", path),
		zap.Int("status", rule.Status),
		zap.Error(err),
	}
	if appErr != nil && appErr.UpstreamStatus != 0 {
		logFields = append(logFields, zap.Int("upstreamStatus", appErr.UpstreamStatus))
	}
	if rule.Status >= 500 {
		zap.L().Error(rule.Label, logFields...)
	} else {
		zap.L().Warn(rule.Label, logFields...)
	}

	return apiErr
}

// Abort writes the translated error and stops the gin chain.
func (t *Translator) Abort(c *gin.Context, err error) {
	apiErr := t.Translate(err, c.Request.URL.Path)
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/internal/security"
	"github.com/duccv/weather-tracker/pkg/logger"
)

// LoggingMiddleware provides request logging functionality
type LoggingMiddleware struct {
	config *MiddlewareConfig
}

func NewLoggingMiddleware(config *MiddlewareConfig) *LoggingMiddleware {
	return &LoggingMiddleware{
		config: config,
	}
}

// RequestLogger logs start and completion of every request. Must run after
// CorrelationIDMiddleware.
func (l *LoggingMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.config.LoggingEnabled {
			c.Next()
			return
		}

		start := time.Now()
		log := l.createRequestLogger(c)

		log.Debug("Request started", zap.String("query", c.Request.URL.RawQuery))

		c.Next()

		duration := time.Since(start)
		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", duration),
		}
		if identity, ok := security.IdentityFromContext(c.Request.Context()); ok {
			fields = append(fields, zap.String("username", identity.Subject))
		}
		log.Info("Request completed", fields...)

		if l.config.SlowRequestThreshold > 0 && duration > l.config.SlowRequestThreshold {
			log.Warn("Slow request detected", zap.Duration("duration", duration))
		}
	}
}

func (l *LoggingMiddleware) createRequestLogger(c *gin.Context) *zap.Logger {
	log := logger.WithCorrelationID(zap.L(), CorrelationID(c.Request.Context()))
	log = log.With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)

	if l.config.LogIPAddress {
		log = log.With(zap.String("ip", getClientIP(c)))
	}
	if l.config.LogUserAgent {
		log = log.With(zap.String("userAgent", c.GetHeader("User-Agent")))
	}
	return log
}

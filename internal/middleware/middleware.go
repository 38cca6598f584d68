package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/duccv/weather-tracker/internal/constant"
)

type MiddlewareConfig struct {
	// Authentication allow-list
	PublicPaths    []string // exact match
	PublicPrefixes []string

	// Logging Configuration
	LoggingEnabled       bool
	LogUserAgent         bool
	LogIPAddress         bool
	SlowRequestThreshold time.Duration
}

func DefaultMiddlewareConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		PublicPaths: []string{
			constant.RegisterPath,
			constant.TokenPath,
		},
		PublicPrefixes: []string{
			"/swagger",
			"/v3/api-docs",
			"/docs",
			constant.HealthPath,
			constant.DefaultMetricPath,
		},
		LoggingEnabled:       true,
		LogUserAgent:         true,
		LogIPAddress:         true,
		SlowRequestThreshold: 5 * time.Second,
	}
}

// getClientIP extracts the real client IP address
func getClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

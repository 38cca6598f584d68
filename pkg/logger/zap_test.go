package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/duccv/weather-tracker/config"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, getLogLevel("debug", "development").Level())
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("nonsense", "development").Level())
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("debug", "production").Level())
	assert.Equal(t, zapcore.WarnLevel, getLogLevel("warn", "production").Level())
}

func TestWithCorrelationID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	WithCorrelationID(base, "cid-1").Info("with")
	WithCorrelationID(base, "").Info("without")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "cid-1", entries[0].ContextMap()["correlation_id"])
	_, ok := entries[1].ContextMap()["correlation_id"]
	assert.False(t, ok)
}

func TestBuildCores(t *testing.T) {
	level := zapcore.InfoLevel

	assert.Len(t, buildCores(config.LoggerConfig{Environment: "development"}, level), 1)
	assert.Len(t, buildCores(config.LoggerConfig{Environment: "production"}, level), 1)

	file := filepath.Join(t.TempDir(), "app.log")
	assert.Len(t, buildCores(config.LoggerConfig{Environment: "production", FilePath: file}, level), 1)
	assert.Len(t, buildCores(config.LoggerConfig{Environment: "development", FilePath: file}, level), 2)
}

func TestWithComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithComponent(zap.New(core), "app").Info("started")

	assert.Equal(t, "app", logs.All()[0].ContextMap()["component"])
}

package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/duccv/weather-tracker/config"
)

const production = "production"

var (
	zapLogger *zap.Logger
	once      sync.Once
)

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// buildCores returns a rotating JSON file core when a path is set, plus a
// stdout core: colored console outside production, JSON in production
// when nothing is written to file.
func buildCores(cfg config.LoggerConfig, level zapcore.LevelEnabler) []zapcore.Core {
	var cores []zapcore.Core

	if cfg.FilePath != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			LocalTime:  cfg.LocalTime,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotating), level))
	}

	stdout := zapcore.Lock(os.Stdout)
	if cfg.Environment != production {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), stdout, level))
	} else if cfg.FilePath == "" {
		cores = append(cores, zapcore.NewCore(jsonEncoder(), stdout, level))
	}
	return cores
}

func newLogger(cfg config.LoggerConfig) *zap.Logger {
	level := getLogLevel(cfg.Level, cfg.Environment)
	return zap.New(zapcore.NewTee(buildCores(cfg, level)...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// getLogLevel parses levelStr. Production never logs below info.
func getLogLevel(levelStr string, env string) zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(levelStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[Logger] ⚠️  Invalid log level '%s', fallback to INFO\n", levelStr)
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if env == production && level.Level() < zapcore.InfoLevel {
		fmt.Fprintf(os.Stderr, "[Logger] ⚠️  Log level '%s' not allowed in production. Fallback to INFO\n", levelStr)
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return level
}

// GetLogger builds the process logger on first use; later calls ignore cfg.
func GetLogger(cfg config.LoggerConfig) *zap.Logger {
	once.Do(func() {
		zapLogger = newLogger(cfg)
	})
	return zapLogger
}

func WithCorrelationID(logger *zap.Logger, correlationID string) *zap.Logger {
	if correlationID == "" {
		return logger
	}
	return logger.With(zap.String("correlation_id", correlationID))
}

func WithComponent(logger *zap.Logger, component string) *zap.Logger {
	return logger.With(zap.String("component", component))
}

// Sync flushes buffered entries of the process logger.
func Sync() error {
	if zapLogger == nil {
		return nil
	}
	return zapLogger.Sync()
}

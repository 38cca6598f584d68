package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/config"
)

type DatabaseType string

const (
	MongoDBNoSQL DatabaseType = "mongodb"
	InMemory     DatabaseType = "memory"
)

type Database interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
	GetType() DatabaseType
	IsConnected() bool
}

// DatabaseFactory keeps the named connections opened at startup so they
// can be closed together on shutdown.
type DatabaseFactory struct {
	databases map[string]Database
}

func NewDatabaseFactory() *DatabaseFactory {
	return &DatabaseFactory{
		databases: make(map[string]Database),
	}
}

// CreateDatabase connects the database described by cfg and registers it
// under name.
func (f *DatabaseFactory) CreateDatabase(ctx context.Context, name string, cfg *config.DatabaseConfig) (Database, error) {
	var db Database

	switch DatabaseType(cfg.Type) {
	case MongoDBNoSQL:
		db = NewMongoDB(&cfg.MongoConfig)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}

	f.databases[name] = db
	return db, nil
}

func (f *DatabaseFactory) GetDatabase(name string) (Database, error) {
	db, exists := f.databases[name]
	if !exists {
		return nil, fmt.Errorf("database '%s' not found", name)
	}
	return db, nil
}

func (f *DatabaseFactory) CloseAll(ctx context.Context) {
	for name, db := range f.databases {
		if err := db.Close(ctx); err != nil {
			zap.L().Error("Error closing database", zap.String("name", name), zap.Error(err))
		}
	}
	f.databases = make(map[string]Database)
}

// HealthCheck pings every registered database.
func (f *DatabaseFactory) HealthCheck(ctx context.Context) map[string]error {
	result := make(map[string]error, len(f.databases))
	for name, db := range f.databases {
		result[name] = db.Ping(ctx)
	}
	return result
}

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"github.com/duccv/weather-tracker/config"
)

// MongoDB wraps one driver client and the configured database.
type MongoDB struct {
	config *config.MongoConfig
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoDB(cfg *config.MongoConfig) *MongoDB {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30
	}
	return &MongoDB{
		config: cfg,
		logger: zap.L(),
	}
}

func (m *MongoDB) Connect(ctx context.Context) error {
	m.logger.Info("Connecting to MongoDB",
		zap.String("database", m.config.Database),
		zap.String("replica_set", m.config.ReplicaSet),
		zap.Int("connect_timeout_seconds", m.config.ConnectTimeout))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.ConnectTimeout)*time.Second)
	defer cancel()

	client, err := mongo.Connect(m.clientOptions())
	if err != nil {
		return fmt.Errorf("create mongo client: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}

	m.client = client
	m.db = client.Database(m.config.Database)
	m.logger.Info("Connected to MongoDB", zap.String("database", m.config.Database))
	return nil
}

func (m *MongoDB) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(m.config.URI).
		SetConnectTimeout(time.Duration(m.config.ConnectTimeout) * time.Second).
		SetReadPreference(readpref.Primary()).
		SetServerSelectionTimeout(5 * time.Second).
		SetRetryWrites(true)

	if m.config.ReplicaSet != "" {
		opts.SetReplicaSet(m.config.ReplicaSet)
	}
	if m.config.Username != "" {
		opts.SetAuth(options.Credential{
			Username:   m.config.Username,
			Password:   m.config.Password,
			AuthSource: m.config.AuthSource,
		})
	}
	if m.config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(m.config.MaxPoolSize))
	}
	if m.config.MinPoolSize > 0 {
		opts.SetMinPoolSize(uint64(m.config.MinPoolSize))
	}
	if m.config.SocketTimeout > 0 {
		opts.SetTimeout(time.Duration(m.config.SocketTimeout) * time.Second)
	}
	return opts
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("mongo client not connected")
	}
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) GetType() DatabaseType {
	return MongoDBNoSQL
}

func (m *MongoDB) IsConnected() bool {
	return m.client != nil
}

// DB returns the configured database handle; nil before Connect.
func (m *MongoDB) DB() *mongo.Database {
	return m.db
}

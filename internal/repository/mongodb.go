// Package repository provides the MongoDB persistence layer.
package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig tunes the connection pool and timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression turns on wire compression; log writes are the
	// bulk of our traffic and compress well.
	EnableCompression bool
}

// DefaultMongoConfig returns the production pool settings.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB bundles the client with handles to every collection the service
// touches: the food catalog, per-user targets and plans, the audit log, and
// the account/RBAC collections.
type MongoDB struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Foods       *mongo.Collection
	Targets     *mongo.Collection
	MealPlans   *mongo.Collection
	Logs        *mongo.Collection
	Users       *mongo.Collection
	Roles       *mongo.Collection
	Permissions *mongo.Collection
	Tokens      *mongo.Collection
}

// NewMongoDB connects with the default pool settings.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, verifies the server with a ping, and
// ensures the service's indexes exist.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:      client,
		Database:    db,
		Foods:       db.Collection("foods"),
		Targets:     db.Collection("nutrition_targets"),
		MealPlans:   db.Collection("meal_plans"),
		Logs:        db.Collection("logs"),
		Users:       db.Collection("users"),
		Roles:       db.Collection("roles"),
		Permissions: db.Collection("permissions"),
		Tokens:      db.Collection("tokens"),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// ensureIndexes creates the indexes the queries rely on. Only the food-name
// index is treated as fatal; the rest tolerate pre-existing definitions,
// since re-deploys run this against already-indexed collections.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	index := func(unique bool, keys map[string]interface{}) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetUnique(unique),
		}
	}

	// Catalog lookups and prefix search by name.
	if _, err := m.Foods.Indexes().CreateOne(ctx, index(false, map[string]interface{}{"name": 1})); err != nil {
		return err
	}

	// Active target config per account.
	_, _ = m.Targets.Indexes().CreateOne(ctx, index(false, map[string]interface{}{"user_id": 1, "active": 1}))

	// One saved plan per account per day.
	_, _ = m.MealPlans.Indexes().CreateOne(ctx, index(true, map[string]interface{}{"user_id": 1, "date": 1}))

	// Log queries filter by request ID. The logs TTL index is owned by
	// SetLogsTTL so the retention window can change at runtime.
	_, _ = m.Logs.Indexes().CreateOne(ctx, index(false, map[string]interface{}{"request_id": 1}))

	_, _ = m.Users.Indexes().CreateOne(ctx, index(true, map[string]interface{}{"email": 1}))
	_, _ = m.Roles.Indexes().CreateOne(ctx, index(true, map[string]interface{}{"name": 1}))
	_, _ = m.Permissions.Indexes().CreateOne(ctx, index(true, map[string]interface{}{"resource": 1, "action": 1}))

	_, _ = m.Tokens.Indexes().CreateOne(ctx, index(true, map[string]interface{}{"token": 1}))
	_, _ = m.Tokens.Indexes().CreateOne(ctx, index(false, map[string]interface{}{"user_id": 1, "type": 1}))

	// Expire tokens at their own expires_at.
	_, _ = m.Tokens.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]interface{}{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	})

	return nil
}

// SetLogsTTL points the log-retention TTL index at ttlDays. The old index
// is dropped first because Mongo refuses to alter expireAfterSeconds in
// place.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	_, _ = m.Logs.Indexes().DropOne(ctx, "timestamp_1")

	ttlSeconds := int32(ttlDays * 24 * 60 * 60)
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]interface{}{"timestamp": 1},
		Options: options.Index().SetExpireAfterSeconds(ttlSeconds),
	})
	if err != nil && isIndexConflict(err) {
		return nil
	}
	return err
}

// isIndexConflict matches the server errors for an equivalent index that
// already exists.
func isIndexConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "index already exists") || strings.Contains(msg, "IndexOptionsConflict")
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server with a short deadline, for readiness probes.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

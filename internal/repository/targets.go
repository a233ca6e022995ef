// Package repository provides data access for nutrition targets.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

// TargetsConfig represents a nutrition-targets configuration document.
// A user has at most one active configuration; older ones are kept as history.
type TargetsConfig struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID    string                 `bson:"user_id" json:"user_id"`
	Targets   model.NutritionTargets `bson:"targets" json:"targets"`
	Active    bool                   `bson:"active" json:"active"`
	Version   int                    `bson:"version" json:"version"`
	// Source records how the targets were produced: "manual" or "computed".
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TargetsRepository provides methods for nutrition-targets operations.
type TargetsRepository struct {
	collection *mongo.Collection
}

// NewTargetsRepository creates a new targets repository.
func NewTargetsRepository(db *MongoDB) *TargetsRepository {
	return &TargetsRepository{
		collection: db.Targets,
	}
}

// GetActive returns the user's active targets configuration, or nil when
// the user has none.
func (r *TargetsRepository) GetActive(ctx context.Context, userID string) (*TargetsConfig, error) {
	var config TargetsConfig
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "active": true}).Decode(&config)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Create deactivates any current configuration for the user and inserts a
// new active one.
func (r *TargetsRepository) Create(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*TargetsConfig, error) {
	var version = 1
	current, err := r.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		version = current.Version + 1
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"user_id": userID, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	config := TargetsConfig{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Targets:   targets,
		Active:    true,
		Version:   version,
		Source:    source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err = r.collection.InsertOne(ctx, config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// List returns the user's targets history, newest first.
func (r *TargetsRepository) List(ctx context.Context, userID string, limit int) ([]TargetsConfig, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var configs []TargetsConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}

	return configs, nil
}

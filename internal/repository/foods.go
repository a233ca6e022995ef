// Package repository provides data access for the food catalog.
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

// FoodsRepository provides methods for food catalog operations.
type FoodsRepository struct {
	collection *mongo.Collection
}

// NewFoodsRepository creates a new foods repository.
func NewFoodsRepository(db *MongoDB) *FoodsRepository {
	return &FoodsRepository{
		collection: db.Foods,
	}
}

// FindByID returns the food with the given ID, or nil when not found.
func (r *FoodsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error) {
	var food model.FoodItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&food)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// FindByIDs returns the foods matching the given IDs, keyed by hex ID.
// IDs with no matching document are simply absent from the map.
func (r *FoodsRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]*model.FoodItem, error) {
	result := make(map[string]*model.FoodItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var foods []model.FoodItem
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	for i := range foods {
		result[foods[i].ID.Hex()] = &foods[i]
	}
	return result, nil
}

// List returns catalog entries, optionally filtered by a case-insensitive
// name prefix and category.
func (r *FoodsRepository) List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = bson.M{"$regex": "^" + name, "$options": "i"}
	}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var foods []model.FoodItem
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Create inserts a new catalog entry.
func (r *FoodsRepository) Create(ctx context.Context, food *model.FoodItem) error {
	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	food.CreatedAt = time.Now()
	food.UpdatedAt = food.CreatedAt

	_, err := r.collection.InsertOne(ctx, food)
	return err
}

// Update replaces the mutable fields of an existing catalog entry and
// returns the updated document.
func (r *FoodsRepository) Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error) {
	update := bson.M{
		"$set": bson.M{
			"name":          food.Name,
			"category":      food.Category,
			"serving_label": food.ServingLabel,
			"per_serving":   food.PerServing,
			"updated_at":    time.Now(),
		},
	}

	var updated model.FoodItem
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a catalog entry. Returns true when a document was deleted.
func (r *FoodsRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

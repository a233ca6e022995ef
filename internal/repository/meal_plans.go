// Package repository provides data access for saved meal plans.
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

// MealPlanDocument represents one saved day of a user's meal plan: the
// assigned foods, the computed serving-size vector, and the day totals.
type MealPlanDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"user_id" json:"user_id"`
	// Date is the plan day in YYYY-MM-DD form.
	Date     string                 `bson:"date" json:"date"`
	Portions []model.MealPortion    `bson:"portions" json:"portions"`
	Totals   model.Nutrition        `bson:"totals" json:"totals"`
	Targets  model.NutritionTargets `bson:"targets" json:"targets"`
	CreatedAt time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time             `bson:"updated_at" json:"updated_at"`
}

// MealPlansRepository provides methods for meal plan persistence.
type MealPlansRepository struct {
	collection *mongo.Collection
}

// NewMealPlansRepository creates a new meal plans repository.
func NewMealPlansRepository(db *MongoDB) *MealPlansRepository {
	return &MealPlansRepository{
		collection: db.MealPlans,
	}
}

// Save upserts the plan for (user, date) and returns the stored document.
// Saving a day the user already planned replaces that day.
func (r *MealPlansRepository) Save(ctx context.Context, plan *MealPlanDocument) (*MealPlanDocument, error) {
	nowTime := time.Now()
	update := bson.M{
		"$set": bson.M{
			"portions":   plan.Portions,
			"totals":     plan.Totals,
			"targets":    plan.Targets,
			"updated_at": nowTime,
		},
		"$setOnInsert": bson.M{
			"user_id":    plan.UserID,
			"date":       plan.Date,
			"created_at": nowTime,
		},
	}

	var saved MealPlanDocument
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": plan.UserID, "date": plan.Date},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByUserAndDate returns the plan for (user, date), or nil when none exists.
func (r *MealPlansRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*MealPlanDocument, error) {
	var plan MealPlanDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListByUser returns the user's saved plans, newest date first.
func (r *MealPlansRepository) ListByUser(ctx context.Context, userID string, limit int) ([]MealPlanDocument, error) {
	opts := options.Find().SetSort(bson.M{"date": -1})
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

	var plans []MealPlanDocument
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Delete removes the plan for (user, date). Returns true when a document
// was deleted.
func (r *MealPlansRepository) Delete(ctx context.Context, userID, date string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "date": date})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

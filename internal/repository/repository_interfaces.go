// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

// FoodsRepositoryInterface defines the interface for food catalog operations.
type FoodsRepositoryInterface interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]*model.FoodItem, error)
	List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error)
	Create(ctx context.Context, food *model.FoodItem) error
	Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// TargetsRepositoryInterface defines the interface for nutrition-targets operations.
type TargetsRepositoryInterface interface {
	GetActive(ctx context.Context, userID string) (*TargetsConfig, error)
	Create(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*TargetsConfig, error)
	List(ctx context.Context, userID string, limit int) ([]TargetsConfig, error)
}

// MealPlansRepositoryInterface defines the interface for meal plan persistence.
type MealPlansRepositoryInterface interface {
	Save(ctx context.Context, plan *MealPlanDocument) (*MealPlanDocument, error)
	FindByUserAndDate(ctx context.Context, userID, date string) (*MealPlanDocument, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]MealPlanDocument, error)
	Delete(ctx context.Context, userID, date string) (bool, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

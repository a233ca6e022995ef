package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
)

// FoodsService provides food catalog operations.
type FoodsService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error)
	// ResolveAssignments maps raw (mealType, foodID) pairs to meal
	// assignments, marking slots whose food cannot be resolved as
	// zero-nutrition placeholders.
	ResolveAssignments(ctx context.Context, slots []AssignmentInput) ([]model.MealAssignment, error)
	List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error)
	Create(ctx context.Context, food *model.FoodItem) error
	Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// AssignmentInput is one raw meal slot as supplied by a caller: a meal type
// and either a catalog food ID or inline per-serving macros.
type AssignmentInput struct {
	MealType   string
	FoodID     string
	PerServing *model.Nutrition
}

// FoodsServiceImpl implements FoodsService.
type FoodsServiceImpl struct {
	foodsRepo repository.FoodsRepositoryInterface
}

// NewFoodsService creates a new foods service.
func NewFoodsService(foodsRepo repository.FoodsRepositoryInterface) FoodsService {
	if foodsRepo == nil {
		return &FoodsServiceImpl{}
	}
	return &FoodsServiceImpl{
		foodsRepo: foodsRepo,
	}
}

func (s *FoodsServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error) {
	if s.foodsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.foodsRepo.FindByID(ctx, id)
}

func (s *FoodsServiceImpl) ResolveAssignments(ctx context.Context, slots []AssignmentInput) ([]model.MealAssignment, error) {
	assignments := make([]model.MealAssignment, len(slots))

	// Collect valid catalog IDs for one bulk lookup.
	ids := make([]primitive.ObjectID, 0, len(slots))
	for _, slot := range slots {
		if slot.FoodID == "" || slot.PerServing != nil {
			continue
		}
		if id, err := primitive.ObjectIDFromHex(slot.FoodID); err == nil {
			ids = append(ids, id)
		}
	}

	var foods map[string]*model.FoodItem
	if len(ids) > 0 && s.foodsRepo != nil {
		var err error
		foods, err = s.foodsRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	for i, slot := range slots {
		assignments[i] = model.MealAssignment{
			MealType: slot.MealType,
			FoodID:   slot.FoodID,
		}
		// Inline macros take precedence over catalog lookup.
		if slot.PerServing != nil {
			assignments[i].Assigned = true
			assignments[i].PerServing = *slot.PerServing
			continue
		}
		if food, ok := foods[slot.FoodID]; ok && food != nil {
			assignments[i].Assigned = true
			assignments[i].FoodName = food.Name
			assignments[i].PerServing = food.PerServing
		}
		// Unresolved slots stay as placeholders: Assigned == false.
	}

	return assignments, nil
}

func (s *FoodsServiceImpl) List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error) {
	if s.foodsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.foodsRepo.List(ctx, name, category, limit)
}

func (s *FoodsServiceImpl) Create(ctx context.Context, food *model.FoodItem) error {
	if s.foodsRepo == nil {
		return ErrRepositoryNotConfigured
	}
	return s.foodsRepo.Create(ctx, food)
}

func (s *FoodsServiceImpl) Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error) {
	if s.foodsRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.foodsRepo.Update(ctx, id, food)
}

func (s *FoodsServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if s.foodsRepo == nil {
		return false, ErrRepositoryNotConfigured
	}
	return s.foodsRepo.Delete(ctx, id)
}

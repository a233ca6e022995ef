package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// Shared testify mocks for the service interfaces the handlers depend on.

type mockFoodsService struct {
	mock.Mock
}

func (m *mockFoodsService) Get(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *mockFoodsService) ResolveAssignments(ctx context.Context, slots []service.AssignmentInput) ([]model.MealAssignment, error) {
	args := m.Called(ctx, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealAssignment), args.Error(1)
}

func (m *mockFoodsService) List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error) {
	args := m.Called(ctx, name, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *mockFoodsService) Create(ctx context.Context, food *model.FoodItem) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *mockFoodsService) Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error) {
	args := m.Called(ctx, id, food)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *mockFoodsService) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockTargetsService struct {
	mock.Mock
}

func (m *mockTargetsService) GetActive(ctx context.Context, userID string) (*repository.TargetsConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TargetsConfig), args.Error(1)
}

func (m *mockTargetsService) Resolve(ctx context.Context, userID string) model.NutritionTargets {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.NutritionTargets)
}

func (m *mockTargetsService) Update(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*repository.TargetsConfig, error) {
	args := m.Called(ctx, userID, targets, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TargetsConfig), args.Error(1)
}

func (m *mockTargetsService) List(ctx context.Context, userID string, limit int) ([]repository.TargetsConfig, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TargetsConfig), args.Error(1)
}

func (m *mockTargetsService) ComputeFromProfile(profile service.Profile) (model.NutritionTargets, error) {
	args := m.Called(profile)
	return args.Get(0).(model.NutritionTargets), args.Error(1)
}

type mockMealPlansService struct {
	mock.Mock
}

func (m *mockMealPlansService) Save(ctx context.Context, userID, date string, result model.OptimizationResult) (*repository.MealPlanDocument, error) {
	args := m.Called(ctx, userID, date, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MealPlanDocument), args.Error(1)
}

func (m *mockMealPlansService) Get(ctx context.Context, userID, date string) (*repository.MealPlanDocument, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MealPlanDocument), args.Error(1)
}

func (m *mockMealPlansService) List(ctx context.Context, userID string, limit int) ([]repository.MealPlanDocument, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MealPlanDocument), args.Error(1)
}

func (m *mockMealPlansService) Delete(ctx context.Context, userID, date string) (bool, error) {
	args := m.Called(ctx, userID, date)
	return args.Bool(0), args.Error(1)
}

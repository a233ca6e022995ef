// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
)

type MockMealPlansRepositoryInterface struct {
	mock.Mock
}

func (m *MockMealPlansRepositoryInterface) Save(ctx context.Context, plan *repository.MealPlanDocument) (*repository.MealPlanDocument, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MealPlanDocument), args.Error(1)
}

func (m *MockMealPlansRepositoryInterface) FindByUserAndDate(ctx context.Context, userID, date string) (*repository.MealPlanDocument, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.MealPlanDocument), args.Error(1)
}

func (m *MockMealPlansRepositoryInterface) ListByUser(ctx context.Context, userID string, limit int) ([]repository.MealPlanDocument, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MealPlanDocument), args.Error(1)
}

func (m *MockMealPlansRepositoryInterface) Delete(ctx context.Context, userID, date string) (bool, error) {
	args := m.Called(ctx, userID, date)
	return args.Bool(0), args.Error(1)
}

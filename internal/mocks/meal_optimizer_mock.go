// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

type MockMealOptimizer struct {
	mock.Mock
}

func (m *MockMealOptimizer) Optimize(meals []model.MealAssignment) model.OptimizationResult {
	args := m.Called(meals)
	return args.Get(0).(model.OptimizationResult)
}

func (m *MockMealOptimizer) OptimizeWithTargets(meals []model.MealAssignment, targets model.NutritionTargets) model.OptimizationResult {
	args := m.Called(meals, targets)
	return args.Get(0).(model.OptimizationResult)
}

func (m *MockMealOptimizer) InvalidateCache() {
	m.Called()
}

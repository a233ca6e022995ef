//go:build !integration

package app

import (
	"errors"
	"testing"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInitializeDefaultFoods(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockFoodsRepositoryInterface)
		wantError bool
	}{
		{
			name: "empty catalog seeds starter foods",
			setupMock: func(m *mocks.MockFoodsRepositoryInterface) {
				m.On("List", mock.Anything, "", "", 1).Return([]model.FoodItem{}, nil).Once()
				m.On("Create", mock.Anything, mock.MatchedBy(func(food *model.FoodItem) bool {
					return food.CreatedBy == "system" && food.Name != ""
				})).Return(nil).Times(len(defaultFoods))
			},
			wantError: false,
		},
		{
			name: "populated catalog skips seeding",
			setupMock: func(m *mocks.MockFoodsRepositoryInterface) {
				m.On("List", mock.Anything, "", "", 1).Return([]model.FoodItem{
					{Name: "Oatmeal with berries"},
				}, nil).Once()
			},
			wantError: false,
		},
		{
			name: "list error",
			setupMock: func(m *mocks.MockFoodsRepositoryInterface) {
				m.On("List", mock.Anything, "", "", 1).Return(nil, errors.New("database error")).Once()
			},
			wantError: true,
		},
		{
			name: "create error",
			setupMock: func(m *mocks.MockFoodsRepositoryInterface) {
				m.On("List", mock.Anything, "", "", 1).Return([]model.FoodItem{}, nil).Once()
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error")).Once()
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockFoodsRepositoryInterface)
			mockRepo.Test(t)
			tt.setupMock(mockRepo)

			err := initializeDefaultFoods(mockRepo)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDefaultFoods(t *testing.T) {
	assert.Len(t, defaultFoods, 4)

	seen := make(map[string]bool, len(defaultFoods))
	for _, food := range defaultFoods {
		assert.NotEmpty(t, food.Name)
		assert.NotEmpty(t, food.Category)
		assert.Greater(t, food.PerServing.Calories, 0.0)
		assert.False(t, seen[food.Name], "duplicate starter food %q", food.Name)
		seen[food.Name] = true
	}
}

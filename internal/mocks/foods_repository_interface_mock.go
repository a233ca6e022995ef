// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

type MockFoodsRepositoryInterface struct {
	mock.Mock
}

func (m *MockFoodsRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *MockFoodsRepositoryInterface) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]*model.FoodItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*model.FoodItem), args.Error(1)
}

func (m *MockFoodsRepositoryInterface) List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error) {
	args := m.Called(ctx, name, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodsRepositoryInterface) Create(ctx context.Context, food *model.FoodItem) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *MockFoodsRepositoryInterface) Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error) {
	args := m.Called(ctx, id, food)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *MockFoodsRepositoryInterface) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

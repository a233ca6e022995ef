// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
)

type MockTargetsRepositoryInterface struct {
	mock.Mock
}

func (m *MockTargetsRepositoryInterface) GetActive(ctx context.Context, userID string) (*repository.TargetsConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TargetsConfig), args.Error(1)
}

func (m *MockTargetsRepositoryInterface) Create(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*repository.TargetsConfig, error) {
	args := m.Called(ctx, userID, targets, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TargetsConfig), args.Error(1)
}

func (m *MockTargetsRepositoryInterface) List(ctx context.Context, userID string, limit int) ([]repository.TargetsConfig, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TargetsConfig), args.Error(1)
}

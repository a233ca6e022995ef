// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPermissionService struct {
	mock.Mock
}

func NewMockPermissionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPermissionService {
	m := &MockPermissionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPermissionService) GetPermissionIDByResourceAndAction(ctx context.Context, resource, action string) string {
	args := m.Called(ctx, resource, action)
	return args.String(0)
}

//go:build !integration

package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/mocks"
)

// permissionMatrix mirrors the resource/action pairs the bootstrap seeds.
var permissionMatrix = [][2]string{
	{"plans", "read"}, {"plans", "write"},
	{"foods", "read"}, {"foods", "write"},
	{"targets", "read"}, {"targets", "write"},
	{"users", "read"}, {"users", "write"}, {"users", "delete"},
	{"roles", "read"}, {"roles", "write"},
}

// bootstrapRepos runs the role/permission bootstrap against the given
// mock setup and asserts the expectations afterwards.
func bootstrapRepos(t *testing.T, setup func(*mocks.MockRoleRepositoryInterface, *mocks.MockPermissionRepositoryInterface)) error {
	t.Helper()
	roleRepo := mocks.NewMockRoleRepositoryInterface(t)
	permRepo := mocks.NewMockPermissionRepositoryInterface(t)
	setup(roleRepo, permRepo)

	err := initializeDefaultRolesAndPermissions(roleRepo, permRepo)

	roleRepo.AssertExpectations(t)
	permRepo.AssertExpectations(t)
	return err
}

func expectRoleCreation(roleRepo *mocks.MockRoleRepositoryInterface, name string) {
	roleRepo.On("FindByName", mock.Anything, name).Return(nil, nil).Once()
	roleRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Role) bool {
		return r.Name == name
	})).Return(nil).Once()
}

func TestInitializeDefaultRolesAndPermissions(t *testing.T) {
	t.Run("empty database gets the full matrix and both roles", func(t *testing.T) {
		err := bootstrapRepos(t, func(roleRepo *mocks.MockRoleRepositoryInterface, permRepo *mocks.MockPermissionRepositoryInterface) {
			for _, pair := range permissionMatrix {
				permRepo.On("FindByResourceAndAction", mock.Anything, pair[0], pair[1]).Return(nil, nil).Once()
				permRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Permission")).Return(nil).Once()
			}
			expectRoleCreation(roleRepo, "user")
			expectRoleCreation(roleRepo, "admin")
		})
		assert.NoError(t, err)
	})

	t.Run("existing permissions are not recreated", func(t *testing.T) {
		err := bootstrapRepos(t, func(roleRepo *mocks.MockRoleRepositoryInterface, permRepo *mocks.MockPermissionRepositoryInterface) {
			for _, pair := range permissionMatrix {
				permRepo.On("FindByResourceAndAction", mock.Anything, pair[0], pair[1]).Return(&model.Permission{
					ID:       primitive.NewObjectID(),
					Resource: pair[0],
					Action:   pair[1],
				}, nil).Once()
			}
			expectRoleCreation(roleRepo, "user")
			expectRoleCreation(roleRepo, "admin")
		})
		assert.NoError(t, err)
	})

	t.Run("existing roles are not recreated", func(t *testing.T) {
		err := bootstrapRepos(t, func(roleRepo *mocks.MockRoleRepositoryInterface, permRepo *mocks.MockPermissionRepositoryInterface) {
			for _, pair := range permissionMatrix {
				permRepo.On("FindByResourceAndAction", mock.Anything, pair[0], pair[1]).Return(nil, nil).Once()
				permRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
			}
			roleRepo.On("FindByName", mock.Anything, "user").
				Return(&model.Role{ID: primitive.NewObjectID(), Name: "user"}, nil).Once()
			roleRepo.On("FindByName", mock.Anything, "admin").
				Return(&model.Role{ID: primitive.NewObjectID(), Name: "admin"}, nil).Once()
		})
		assert.NoError(t, err)
	})

	t.Run("a failed permission write does not abort startup", func(t *testing.T) {
		err := bootstrapRepos(t, func(roleRepo *mocks.MockRoleRepositoryInterface, permRepo *mocks.MockPermissionRepositoryInterface) {
			permRepo.On("FindByResourceAndAction", mock.Anything, "plans", "read").Return(nil, nil).Once()
			permRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error")).Once()
			permRepo.On("FindByResourceAndAction", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
			permRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
			roleRepo.On("FindByName", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
			roleRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
		})
		assert.NoError(t, err)
	})

	t.Run("a failed role write does not abort startup", func(t *testing.T) {
		err := bootstrapRepos(t, func(roleRepo *mocks.MockRoleRepositoryInterface, permRepo *mocks.MockPermissionRepositoryInterface) {
			for _, pair := range permissionMatrix {
				permRepo.On("FindByResourceAndAction", mock.Anything, pair[0], pair[1]).Return(nil, nil).Once()
				permRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
			}
			roleRepo.On("FindByName", mock.Anything, "user").Return(nil, nil).Once()
			roleRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error")).Once()
			roleRepo.On("FindByName", mock.Anything, "admin").Return(nil, nil).Maybe()
			roleRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
		})
		assert.NoError(t, err)
	})
}

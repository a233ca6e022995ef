//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

func TestRoleRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewRoleRepository(db.Database)

	plansRead := primitive.NewObjectID().Hex()
	plansWrite := primitive.NewObjectID().Hex()

	userRole := &model.Role{
		Name:        "user",
		Description: "Standard account: manage own plans, foods, and targets",
		Permissions: []string{plansRead, plansWrite},
		Active:      true,
	}

	t.Run("create role", func(t *testing.T) {
		err := repo.Create(ctx, userRole)
		require.NoError(t, err)
		assert.False(t, userRole.ID.IsZero())
		assert.NotZero(t, userRole.CreatedAt)
	})

	t.Run("find by name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "user")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, userRole.ID, found.ID)
		assert.ElementsMatch(t, []string{plansRead, plansWrite}, found.Permissions)
	})

	t.Run("find by unknown name returns nil", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "superuser")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, userRole.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "user", found.Name)
	})

	t.Run("find by unknown ID returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find by IDs", func(t *testing.T) {
		admin := &model.Role{
			Name:        "admin",
			Description: "Full access including user and role management",
			Permissions: []string{plansRead, plansWrite},
			Active:      true,
		}
		require.NoError(t, repo.Create(ctx, admin))

		roles, err := repo.FindByIDs(ctx, []string{userRole.ID.Hex(), admin.ID.Hex()})
		require.NoError(t, err)
		assert.Len(t, roles, 2)
	})

	t.Run("find by IDs skips malformed hex", func(t *testing.T) {
		roles, err := repo.FindByIDs(ctx, []string{userRole.ID.Hex(), "not-an-object-id"})
		require.NoError(t, err)
		assert.Len(t, roles, 1)
	})

	t.Run("update role", func(t *testing.T) {
		userRole.Description = "Standard account"
		err := repo.Update(ctx, userRole)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, userRole.ID)
		require.NoError(t, err)
		assert.Equal(t, "Standard account", found.Description)
	})

	t.Run("list roles", func(t *testing.T) {
		roles, err := repo.List(ctx, bson.M{"active": true}, 10, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(roles), 2)
	})

	t.Run("delete deactivates the role", func(t *testing.T) {
		err := repo.Delete(ctx, userRole.ID)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, userRole.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.False(t, found.Active)
	})
}

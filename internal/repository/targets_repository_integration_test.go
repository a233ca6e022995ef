//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

func TestTargetsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewTargetsRepository(db)

	t.Run("no active config for new user", func(t *testing.T) {
		config, err := repo.GetActive(ctx, "fresh-user")
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("create first configuration", func(t *testing.T) {
		targets := model.NutritionTargets{Calories: 1800, Protein: 120, Carbohydrates: 200, Fat: 60}
		config, err := repo.Create(ctx, "user-1", targets, "manual")
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 1, config.Version)
		assert.True(t, config.Active)
		assert.Equal(t, "manual", config.Source)
		assert.Equal(t, targets, config.Targets)
	})

	t.Run("new configuration supersedes the old one", func(t *testing.T) {
		targets := model.NutritionTargets{Calories: 2200, Protein: 160, Carbohydrates: 260, Fat: 72}
		config, err := repo.Create(ctx, "user-1", targets, "computed")
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 2, config.Version)
		assert.Equal(t, "computed", config.Source)

		active, err := repo.GetActive(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, targets, active.Targets)
		assert.Equal(t, 2, active.Version)
	})

	t.Run("history keeps superseded versions", func(t *testing.T) {
		configs, err := repo.List(ctx, "user-1", 0)
		require.NoError(t, err)
		require.Len(t, configs, 2)

		activeCount := 0
		for _, c := range configs {
			if c.Active {
				activeCount++
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("history respects the limit", func(t *testing.T) {
		configs, err := repo.List(ctx, "user-1", 1)
		require.NoError(t, err)
		assert.Len(t, configs, 1)
	})

	t.Run("users are isolated", func(t *testing.T) {
		_, err := repo.Create(ctx, "user-2", model.DefaultNutritionTargets, "manual")
		require.NoError(t, err)

		active, err := repo.GetActive(ctx, "user-2")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, 1, active.Version)

		other, err := repo.GetActive(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, other)
		assert.Equal(t, 2, other.Version)
	})
}

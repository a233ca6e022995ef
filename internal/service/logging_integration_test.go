//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bounswe/bounswe2025group9-sub004/internal/circuitbreaker"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
	"github.com/bounswe/bounswe2025group9-sub004/internal/testutil"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_nutrihub")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	require.NoError(t, db.SetLogsTTL(ctx, 30))

	svc := NewLoggingService(repository.NewLogsRepository(db))

	t.Run("stores a request log", func(t *testing.T) {
		entry := &model.LogEntry{
			Level:     "info",
			Message:   "Serving sizes optimized",
			RequestID: "req-optimize-001",
			Method:    "POST",
			Path:      "/api/plan/optimize",
		}

		err := svc.CreateLog(ctx, entry)
		require.NoError(t, err)
		assert.False(t, entry.ID.IsZero())
	})

	t.Run("stores a batch", func(t *testing.T) {
		err := svc.CreateLogs(ctx, []*model.LogEntry{
			{Level: "info", Message: "Food entry created", RequestID: "req-food-001"},
			{Level: "info", Message: "Targets recomputed", RequestID: "req-target-001"},
			{Level: "error", Message: "Plan lookup failed", RequestID: "req-plan-001"},
		})
		assert.NoError(t, err)
	})

	t.Run("query by request ID", func(t *testing.T) {
		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{RequestID: "req-optimize-001"})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(entries), 1)
		assert.Equal(t, "/api/plan/optimize", entries[0].Path)
	})

	t.Run("query by level", func(t *testing.T) {
		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{Level: "error"})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(entries), 1)
		assert.Equal(t, "Plan lookup failed", entries[0].Message)
	})

	t.Run("count with and without filters", func(t *testing.T) {
		total, err := svc.CountLogs(ctx, model.LogQueryOptions{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, int64(4))

		infos, err := svc.CountLogs(ctx, model.LogQueryOptions{Level: "info"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, infos, int64(3))
	})

	t.Run("query within a time range", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(time.Hour)

		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{StartTime: &start, EndTime: &end})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(entries), 4)
	})
}

func TestLoggingServiceWithCircuitBreaker_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_nutrihub")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	guarded := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db),
		circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          100 * time.Millisecond,
			Name:             "logs-repository",
		}),
	)
	svc := NewLoggingService(guarded)

	t.Run("writes pass through a closed breaker", func(t *testing.T) {
		err := svc.CreateLog(ctx, &model.LogEntry{
			Level:   "info",
			Message: "Meal plan saved",
		})
		assert.NoError(t, err)
	})
}

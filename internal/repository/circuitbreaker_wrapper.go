// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/circuitbreaker"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
)

// FoodsRepositoryWithCircuitBreaker wraps FoodsRepository with circuit breaker protection.
type FoodsRepositoryWithCircuitBreaker struct {
	repo           *FoodsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewFoodsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewFoodsRepositoryWithCircuitBreaker(repo *FoodsRepository, cb *circuitbreaker.CircuitBreaker) *FoodsRepositoryWithCircuitBreaker {
	return &FoodsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// FindByID looks up a food with circuit breaker protection.
func (r *FoodsRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.FoodItem, error) {
	var result *model.FoodItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByID(ctx, id)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - treat the food as unresolvable (placeholder slot)
		return nil, nil
	}
	return result, err
}

// FindByIDs bulk-resolves foods with circuit breaker protection.
func (r *FoodsRepositoryWithCircuitBreaker) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]*model.FoodItem, error) {
	var result map[string]*model.FoodItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByIDs(ctx, ids)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - unresolved foods become placeholder slots
		return map[string]*model.FoodItem{}, nil
	}
	return result, err
}

// List lists catalog entries with circuit breaker protection.
func (r *FoodsRepositoryWithCircuitBreaker) List(ctx context.Context, name, category string, limit int) ([]model.FoodItem, error) {
	var result []model.FoodItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, name, category, limit)
		return cbErr
	})
	return result, err
}

// Create inserts a catalog entry with circuit breaker protection.
func (r *FoodsRepositoryWithCircuitBreaker) Create(ctx context.Context, food *model.FoodItem) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, food)
	})
}

// Update updates a catalog entry with circuit breaker protection.
func (r *FoodsRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, food *model.FoodItem) (*model.FoodItem, error) {
	var result *model.FoodItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Update(ctx, id, food)
		return cbErr
	})
	return result, err
}

// Delete removes a catalog entry with circuit breaker protection.
func (r *FoodsRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	var result bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Delete(ctx, id)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *FoodsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// TargetsRepositoryWithCircuitBreaker wraps TargetsRepository with circuit breaker protection.
type TargetsRepositoryWithCircuitBreaker struct {
	repo           *TargetsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewTargetsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewTargetsRepositoryWithCircuitBreaker(repo *TargetsRepository, cb *circuitbreaker.CircuitBreaker) *TargetsRepositoryWithCircuitBreaker {
	return &TargetsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the user's active targets with circuit breaker protection.
func (r *TargetsRepositoryWithCircuitBreaker) GetActive(ctx context.Context, userID string) (*TargetsConfig, error) {
	var result *TargetsConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetActive(ctx, userID)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - return nil to fall back to default targets
		return nil, nil
	}
	return result, err
}

// Create stores a targets configuration with circuit breaker protection.
func (r *TargetsRepositoryWithCircuitBreaker) Create(ctx context.Context, userID string, targets model.NutritionTargets, source string) (*TargetsConfig, error) {
	var result *TargetsConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Create(ctx, userID, targets, source)
		return cbErr
	})
	return result, err
}

// List returns the user's targets history with circuit breaker protection.
func (r *TargetsRepositoryWithCircuitBreaker) List(ctx context.Context, userID string, limit int) ([]TargetsConfig, error) {
	var result []TargetsConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, userID, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *TargetsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

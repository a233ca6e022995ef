package cache

import "github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"

// Cache defines the interface for optimization-result cache operations.
// Keys are canonical fingerprints of the optimizer inputs.
type Cache interface {
	Get(key string) (model.OptimizationResult, bool)
	Set(key string, value model.OptimizationResult)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}

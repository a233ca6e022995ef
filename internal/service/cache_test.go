package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service/cache"
)

// cachedResult builds a distinguishable result for cache tests.
func cachedResult(calories float64) model.OptimizationResult {
	return model.OptimizationResult{
		ServingSizes: []float64{1.0, 1.0, 1.0},
		Totals:       model.Nutrition{Calories: calories},
	}
}

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setupCache    func() *ttlCache
		key           string
		expectedValue model.OptimizationResult
		expectedFound bool
	}{
		{
			name: "returns value when exists and not expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, time.Minute)
				c.Set("day-a", cachedResult(2100))
				return c
			},
			key:           "day-a",
			expectedValue: cachedResult(2100),
			expectedFound: true,
		},
		{
			name: "returns false when key not found",
			setupCache: func() *ttlCache {
				return newTTLCache(10, time.Minute)
			},
			key:           "missing",
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, 50*time.Millisecond)
				c.Set("day-a", cachedResult(2100))
				time.Sleep(100 * time.Millisecond)
				return c
			},
			key:           "day-a",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := tt.setupCache()
			value, found := cache.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

func TestTTLCache_Set(t *testing.T) {
	t.Run("evicts LRU when at capacity", func(t *testing.T) {
		cache := newTTLCache(2, time.Minute)
		defer cache.Stop()

		cache.Set("k1", cachedResult(1))
		cache.Set("k2", cachedResult(2))
		cache.Set("k3", cachedResult(3))

		_, ok1 := cache.Get("k1")
		_, ok2 := cache.Get("k2")
		_, ok3 := cache.Get("k3")
		assert.False(t, ok1, "first entry evicted")
		assert.True(t, ok2)
		assert.True(t, ok3)
	})

	t.Run("updates existing entry", func(t *testing.T) {
		cache := newTTLCache(10, time.Minute)
		defer cache.Stop()

		cache.Set("day-a", cachedResult(2100))
		cache.Set("day-a", cachedResult(2500))

		value, ok := cache.Get("day-a")
		assert.True(t, ok)
		assert.Equal(t, 2500.0, value.Totals.Calories)
	})
}

func TestTTLCache_Stop(t *testing.T) {
	cache := newTTLCache(10, time.Minute)
	cache.Set("day-a", cachedResult(2100))

	// Stop should not panic
	assert.NotPanics(t, func() {
		cache.Stop()
	})
}

func TestTTLCache_Metrics(t *testing.T) {
	cache := newTTLCache(10, time.Minute)

	// Perform operations
	cache.Set("k1", cachedResult(1))
	cache.Get("k1") // hit
	cache.Get("k2") // miss
	cache.Set("k2", cachedResult(2))
	cache.Set("k3", cachedResult(3))

	metrics := cache.Metrics()
	assert.Greater(t, metrics.Hits, int64(0))
	assert.Greater(t, metrics.Misses, int64(0))
	assert.Equal(t, 3, metrics.Size)
	assert.Equal(t, 10, metrics.Capacity)
}

func TestTTLCache_ImplementsInterface(t *testing.T) {
	var _ cache.Cache = (*ttlCache)(nil)
	var _ cache.CacheWithMetrics = (*ttlCache)(nil)
}

func TestTTLCache_Concurrency(t *testing.T) {
	cache := newTTLCache(100, time.Minute)
	defer cache.Stop()

	// Test concurrent access
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(worker int) {
			for j := 0; j < 10; j++ {
				key := fmt.Sprintf("w%d-%d", worker, j)
				cache.Set(key, cachedResult(float64(j)))
				cache.Get(key)
			}
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	metrics := cache.Metrics()
	assert.Greater(t, metrics.Size, 0)
}

func TestTTLCache_Eviction(t *testing.T) {
	cache := newTTLCache(3, time.Minute)
	defer cache.Stop()

	// Fill cache to capacity
	cache.Set("k1", cachedResult(1))
	cache.Set("k2", cachedResult(2))
	cache.Set("k3", cachedResult(3))

	// Access 2 and 3 to make 1 the LRU
	cache.Get("k2")
	cache.Get("k3")

	// Add 4, should evict 1
	cache.Set("k4", cachedResult(4))

	_, ok1 := cache.Get("k1")
	_, ok2 := cache.Get("k2")
	_, ok3 := cache.Get("k3")
	_, ok4 := cache.Get("k4")

	assert.False(t, ok1, "entry k1 should be evicted")
	assert.True(t, ok2)
	assert.True(t, ok3)
	assert.True(t, ok4)

	metrics := cache.Metrics()
	assert.Equal(t, int64(1), metrics.Evictions)
}

func TestTTLCache_Cleanup(t *testing.T) {
	cache := newTTLCache(10, 50*time.Millisecond)
	defer cache.Stop()

	// Add entries
	cache.Set("k1", cachedResult(1))
	cache.Set("k2", cachedResult(2))

	// Wait for expiration (must be > TTL + cachedTime update interval of 100ms)
	time.Sleep(200 * time.Millisecond)

	// Manually trigger cleanup
	cache.sweepExpired()

	// Entries should be removed
	metrics := cache.Metrics()
	assert.Equal(t, 0, metrics.Size)
}

func TestTTLCache_RemoveTail(t *testing.T) {
	cache := newTTLCache(2, time.Minute)
	defer cache.Stop()

	cache.Set("k1", cachedResult(1))
	cache.Set("k2", cachedResult(2))

	// Force eviction by adding third item
	cache.Set("k3", cachedResult(3))

	// First item should be evicted (LRU)
	_, ok := cache.Get("k1")
	assert.False(t, ok)
}

func TestTTLCache_MoveToFront(t *testing.T) {
	cache := newTTLCache(3, time.Minute)
	defer cache.Stop()

	cache.Set("k1", cachedResult(1))
	cache.Set("k2", cachedResult(2))
	cache.Set("k3", cachedResult(3))

	// Access 1 to move it to front (making 2 the LRU)
	cache.Get("k1")

	// Add 4, should evict 2 (LRU) since capacity is 3
	cache.Set("k4", cachedResult(4))

	_, ok1 := cache.Get("k1")
	_, ok2 := cache.Get("k2")
	_, ok3 := cache.Get("k3")
	_, ok4 := cache.Get("k4")

	assert.True(t, ok1, "entry k1 should still exist (was accessed)")
	assert.False(t, ok2, "entry k2 should be evicted (was LRU)")
	assert.True(t, ok3, "entry k3 should still exist")
	assert.True(t, ok4, "entry k4 should exist")
}

func TestTTLCache_ExpiredEntryRemoval(t *testing.T) {
	cache := newTTLCache(10, 50*time.Millisecond)
	defer cache.Stop()

	cache.Set("day-a", cachedResult(2100))

	// Wait for expiration
	time.Sleep(100 * time.Millisecond)

	// Get should return false and remove expired entry
	value, found := cache.Get("day-a")
	assert.False(t, found)
	assert.Equal(t, model.OptimizationResult{}, value)

	metrics := cache.Metrics()
	assert.Equal(t, 0, metrics.Size)
}

func TestTTLCache_UpdateExistingEntry(t *testing.T) {
	cache := newTTLCache(10, time.Minute)
	defer cache.Stop()

	cache.Set("day-a", cachedResult(2100))
	value1, _ := cache.Get("day-a")
	assert.Equal(t, 2100.0, value1.Totals.Calories)

	// Update same key
	cache.Set("day-a", cachedResult(2500))
	value2, found := cache.Get("day-a")

	assert.True(t, found)
	assert.Equal(t, 2500.0, value2.Totals.Calories)

	metrics := cache.Metrics()
	assert.Equal(t, 1, metrics.Size, "should still have only one entry")
}

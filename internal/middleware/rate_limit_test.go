package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{
			name:       "default shards when zero",
			numShards:  0,
			wantShards: defaultNumShards,
		},
		{
			name:       "default shards when negative",
			numShards:  -1,
			wantShards: defaultNumShards,
		},
		{
			name:       "custom shard count",
			numShards:  8,
			wantShards: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.Equal(t, tt.wantShards, rl.numShards)
			assert.Equal(t, 10, rl.rate)
			assert.Equal(t, time.Minute, rl.window)
			assert.Len(t, rl.shards, tt.wantShards)
		})
	}
}

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	defer rl.Stop()

	assert.Equal(t, defaultNumShards, rl.numShards)
}

func TestShardedRateLimiter_Take(t *testing.T) {
	tests := []struct {
		name        string
		rate        int
		requests    int
		wantAllowed int
		wantBlocked int
	}{
		{
			name:        "under the limit",
			rate:        5,
			requests:    3,
			wantAllowed: 3,
			wantBlocked: 0,
		},
		{
			name:        "exactly at the limit",
			rate:        5,
			requests:    5,
			wantAllowed: 5,
			wantBlocked: 0,
		},
		{
			name:        "over the limit",
			rate:        5,
			requests:    8,
			wantAllowed: 5,
			wantBlocked: 3,
		},
		{
			name:        "single-token window",
			rate:        1,
			requests:    3,
			wantAllowed: 1,
			wantBlocked: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(tt.rate, time.Minute, 4)
			defer rl.Stop()

			allowed, blocked := 0, 0
			for i := 0; i < tt.requests; i++ {
				if ok, _ := rl.take("user:mealcoach"); ok {
					allowed++
				} else {
					blocked++
				}
			}

			assert.Equal(t, tt.wantAllowed, allowed)
			assert.Equal(t, tt.wantBlocked, blocked)
		})
	}
}

func TestShardedRateLimiter_RemainingTokens(t *testing.T) {
	rl := NewShardedRateLimiter(5, time.Minute, 4)
	defer rl.Stop()

	wantRemaining := []int{4, 3, 2, 1, 0, 0} // last request is blocked
	for i, want := range wantRemaining {
		_, remaining := rl.take("user:mealcoach")
		assert.Equal(t, want, remaining, "request %d", i+1)
	}
}

func TestShardedRateLimiter_MultipleIdentifiers(t *testing.T) {
	rl := NewShardedRateLimiter(3, time.Minute, 4)
	defer rl.Stop()

	// Each caller gets an independent quota.
	for _, id := range []string{"user:jreyes", "user:sokafor", "ip:10.0.0.7"} {
		for i := 0; i < 3; i++ {
			allowed, _ := rl.take(id)
			assert.True(t, allowed, "request %d for %s should be allowed", i+1, id)
		}
		allowed, _ := rl.take(id)
		assert.False(t, allowed, "4th request for %s should be blocked", id)
	}
}

func TestShardedRateLimiter_RateLimit_Middleware(t *testing.T) {
	tests := []struct {
		name         string
		rate         int
		requests     int
		wantOKCount  int
		want429Count int
	}{
		{
			name:         "all requests pass",
			rate:         5,
			requests:     3,
			wantOKCount:  3,
			want429Count: 0,
		},
		{
			name:         "burst past the limit is rejected",
			rate:         3,
			requests:     5,
			wantOKCount:  3,
			want429Count: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(tt.rate, time.Minute, 4)
			defer rl.Stop()

			router := gin.New()
			router.Use(rl.RateLimit())
			router.POST("/api/plan/optimize", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			okCount, blockedCount := 0, 0
			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/plan/optimize", nil)
				req.RemoteAddr = "192.168.1.1:12345"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					okCount++
				case http.StatusTooManyRequests:
					blockedCount++
					assert.NotEmpty(t, w.Header().Get("Retry-After"))
				}
			}

			assert.Equal(t, tt.wantOKCount, okCount)
			assert.Equal(t, tt.want429Count, blockedCount)
		})
	}
}

func TestShardedRateLimiter_RateLimit_Headers(t *testing.T) {
	rl := NewShardedRateLimiter(5, time.Minute, 4)
	defer rl.Stop()

	router := gin.New()
	router.Use(rl.RateLimit())
	router.GET("/api/plans", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestShardedRateLimiter_UserRateLimit_Middleware(t *testing.T) {
	rl := NewShardedRateLimiter(3, time.Minute, 4)
	defer rl.Stop()

	userID := primitive.NewObjectID()

	router := gin.New()
	// Simulate the JWT middleware attaching the user.
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.Use(rl.UserRateLimit())
	router.POST("/api/plan/optimize", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	okCount, blockedCount := 0, 0
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/plan/optimize", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			okCount++
		case http.StatusTooManyRequests:
			blockedCount++
		}
	}

	assert.Equal(t, 3, okCount)
	assert.Equal(t, 2, blockedCount)
}

func TestUserIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		setupCtx   func(c *gin.Context)
		wantPrefix string
	}{
		{
			name: "keys on the user when authenticated",
			setupCtx: func(c *gin.Context) {
				c.Set("user_id", primitive.NewObjectID())
			},
			wantPrefix: "user:",
		},
		{
			name:       "falls back to the client IP",
			setupCtx:   func(c *gin.Context) {},
			wantPrefix: "ip:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = "192.168.1.1:12345"

			tt.setupCtx(c)

			assert.Contains(t, userIdentifier(c), tt.wantPrefix)
		})
	}
}

func TestShardedRateLimiter_Stats(t *testing.T) {
	rl := NewShardedRateLimiter(10, time.Minute, 4)
	defer rl.Stop()

	for _, id := range []string{"user:a", "user:b", "user:c", "ip:10.0.0.1", "ip:10.0.0.2"} {
		rl.take(id)
	}

	total, perShard := rl.Stats()
	assert.Equal(t, 5, total)
	assert.Len(t, perShard, 4)

	sum := 0
	for _, count := range perShard {
		sum += count
	}
	assert.Equal(t, total, sum)
}

func TestShardedRateLimiter_WindowReset(t *testing.T) {
	rl := NewShardedRateLimiter(2, 50*time.Millisecond, 4)
	defer rl.Stop()

	rl.take("user:mealcoach")
	rl.take("user:mealcoach")
	allowed, _ := rl.take("user:mealcoach")
	assert.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	allowed, remaining := rl.take("user:mealcoach")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}

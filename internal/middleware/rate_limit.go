package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/i18n"
)

// defaultNumShards is the shard count used when the caller does not pick one.
const defaultNumShards = 16

// bucket tracks the remaining tokens for one caller within the current window.
type bucket struct {
	tokens    int
	lastReset time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// ShardedRateLimiter is a fixed-window rate limiter sharded by caller
// identity to keep lock contention low under concurrent traffic. Plan
// optimization is the hottest endpoint, so the limiter is sized for many
// distinct authenticated users rather than a few busy IPs.
type ShardedRateLimiter struct {
	shards    []*limiterShard
	numShards int
	rate      int
	window    time.Duration
	stopCh    chan struct{}
}

// RateLimiter is an alias kept for callers that predate sharding.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter creates a sharded rate limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a rate limiter with an explicit shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*limiterShard, numShards)
	for i := range shards {
		shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}

	rl := &ShardedRateLimiter{
		shards:    shards,
		numShards: numShards,
		rate:      rate,
		window:    window,
		stopCh:    make(chan struct{}),
	}

	go rl.cleanupLoop()
	return rl
}

func (rl *ShardedRateLimiter) shardFor(identifier string) *limiterShard {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// take consumes one token for the identifier, opening a fresh window when the
// previous one has elapsed.
func (rl *ShardedRateLimiter) take(identifier string) (allowed bool, remaining int) {
	shard := rl.shardFor(identifier)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := time.Now()
	b, exists := shard.buckets[identifier]
	if !exists || now.Sub(b.lastReset) > rl.window {
		shard.buckets[identifier] = &bucket{tokens: rl.rate - 1, lastReset: now}
		return true, rl.rate - 1
	}

	if b.tokens <= 0 {
		return false, 0
	}

	b.tokens--
	return true, b.tokens
}

// limit applies the shared throttle for a given identity function.
func (rl *ShardedRateLimiter) limit(identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.take(identify(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			locale := i18n.GetLocale(c)
			c.Header("Retry-After", rl.window.String())
			errorResp := dto.NewError(dto.ErrCodeRateLimit, i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, locale)).
				WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResp)
			return
		}

		c.Next()
	}
}

// RateLimit throttles requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// UserRateLimit throttles requests per authenticated user, falling back to
// the client IP for anonymous traffic.
func (rl *ShardedRateLimiter) UserRateLimit() gin.HandlerFunc {
	return rl.limit(userIdentifier)
}

// userIdentifier keys the limiter on the JWT user when one is present.
func userIdentifier(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			return "user:" + id.Hex()
		}
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictStale()
		case <-rl.stopCh:
			return
		}
	}
}

// evictStale drops buckets that have been idle for two full windows.
func (rl *ShardedRateLimiter) evictStale() {
	now := time.Now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, b := range shard.buckets {
			if now.Sub(b.lastReset) > threshold {
				delete(shard.buckets, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop terminates the background eviction loop.
func (rl *ShardedRateLimiter) Stop() {
	close(rl.stopCh)
}

// Stats reports how many callers each shard is currently tracking.
func (rl *ShardedRateLimiter) Stats() (totalVisitors int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.buckets)
		totalVisitors += perShard[i]
		shard.mu.Unlock()
	}
	return totalVisitors, perShard
}

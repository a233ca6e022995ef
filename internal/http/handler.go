package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/i18n"
	"github.com/bounswe/bounswe2025group9-sub004/internal/metrics"
	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// targetsCache provides thread-safe, per-user caching of resolved targets.
type targetsCache struct {
	mu      sync.RWMutex
	entries map[string]targetsCacheEntry
	ttl     time.Duration
}

type targetsCacheEntry struct {
	targets   model.NutritionTargets
	expiresAt time.Time
}

// newTargetsCache creates a new targets cache with the given TTL.
func newTargetsCache(ttl time.Duration) *targetsCache {
	return &targetsCache{
		entries: make(map[string]targetsCacheEntry),
		ttl:     ttl,
	}
}

// get returns cached targets if valid, or false if expired/missing.
func (c *targetsCache) get(userID string) (model.NutritionTargets, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return model.NutritionTargets{}, false
	}
	return entry.targets, true
}

// set stores targets in the cache with TTL.
func (c *targetsCache) set(userID string, targets model.NutritionTargets) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = targetsCacheEntry{
		targets:   targets,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// invalidate evicts one user's entry, or the whole cache when userID is empty.
func (c *targetsCache) invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if userID == "" {
		c.entries = make(map[string]targetsCacheEntry)
		return
	}
	delete(c.entries, userID)
}

// Handler provides HTTP handlers for serving-size optimization routes.
type Handler struct {
	optimizer      service.MealOptimizer
	foodsService   service.FoodsService
	targetsService service.TargetsService
	targetsCache   *targetsCache
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithTargetsCacheTTL sets the TTL for per-user targets caching.
func WithTargetsCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.targetsCache = newTargetsCache(ttl)
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(optimizer service.MealOptimizer, foodsService service.FoodsService, targetsService service.TargetsService, opts ...HandlerOption) *Handler {
	h := &Handler{
		optimizer:      optimizer,
		foodsService:   foodsService,
		targetsService: targetsService,
		targetsCache:   newTargetsCache(30 * time.Second), // Default 30s cache
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// resolveTargets picks the targets for a request: explicit request targets
// win, then the caller's stored targets (cached), then service defaults.
func (h *Handler) resolveTargets(ctx context.Context, c *gin.Context, requested *dto.NutritionRequest) model.NutritionTargets {
	if requested != nil {
		return requested.ToTargets()
	}

	userID := c.GetString("user_id")
	if userID == "" || h.targetsService == nil {
		return model.DefaultNutritionTargets
	}

	if targets, ok := h.targetsCache.get(userID); ok {
		return targets
	}

	// Use a timeout for database fetch
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	targets := h.targetsService.Resolve(ctx, userID)
	h.targetsCache.set(userID, targets)
	return targets
}

// InvalidateTargetsCache evicts a user's cached targets.
// Call this when targets are updated.
func (h *Handler) InvalidateTargetsCache(userID string) {
	h.targetsCache.invalidate(userID)
}

// resolveMeals converts request meal slots into assignments, looking up
// referenced catalog foods in one bulk query.
func (h *Handler) resolveMeals(ctx context.Context, slots []dto.MealSlotRequest) ([]model.MealAssignment, error) {
	inputs := make([]service.AssignmentInput, len(slots))
	for i, slot := range slots {
		inputs[i] = service.AssignmentInput{
			MealType: slot.MealType,
			FoodID:   slot.FoodID,
		}
		if slot.PerServing != nil {
			nutrition := slot.PerServing.ToNutrition()
			inputs[i].PerServing = &nutrition
		}
	}

	if h.foodsService == nil {
		// No catalog available - only inline macros resolve
		assignments := make([]model.MealAssignment, len(inputs))
		for i, in := range inputs {
			assignments[i] = model.MealAssignment{MealType: in.MealType, FoodID: in.FoodID}
			if in.PerServing != nil {
				assignments[i].Assigned = true
				assignments[i].PerServing = *in.PerServing
			}
		}
		return assignments, nil
	}

	return h.foodsService.ResolveAssignments(ctx, inputs)
}

// OptimizePlan handles POST /api/plan/optimize requests.
//
// @Summary      Optimize daily serving sizes
// @Description  Computes serving-size multipliers for the day's three meals so that daily totals approach the caller's nutrition targets. Multipliers stay within 0.5-12.0 and are rounded to two decimals. Supports idempotency via Idempotency-Key header.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.OptimizePlanRequest true "Meal slots and optional targets"
// @Success      200 {object} dto.SuccessResponse "Optimized serving sizes"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Not found - resource not found"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      502 {object} dto.ErrorResponse "Bad gateway"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Security     BearerAuth
// @Router       /api/plan/optimize [post]
func (h *Handler) OptimizePlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.OptimizePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			metrics.RecordOptimization(0, "validation_error")
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationMeals, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	// Audit log (async)
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "optimize_plan", "Serving-size optimization requested", map[string]interface{}{
				"meal_count":         len(req.Meals),
				"has_custom_targets": req.Targets != nil,
			})
		}
	}

	meals, err := h.resolveMeals(c.Request.Context(), req.Meals)
	if err != nil {
		metrics.RecordOptimization(0, "error")
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	targets := h.resolveTargets(c.Request.Context(), c, req.Targets)

	start := time.Now()
	result := h.optimizer.OptimizeWithTargets(meals, targets)
	duration := time.Since(start)

	metrics.RecordOptimization(duration, "success")
	builder.SuccessOK(result)
}

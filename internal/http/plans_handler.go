package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/i18n"
	"github.com/bounswe/bounswe2025group9-sub004/internal/metrics"
	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// PlansHandler provides HTTP handlers for persisted meal plan routes.
type PlansHandler struct {
	plansService service.MealPlansService
	optimizer    service.MealOptimizer
	// planHandler supplies meal and targets resolution shared with the
	// optimize endpoint.
	planHandler *Handler
}

// NewPlansHandler creates a new PlansHandler instance.
func NewPlansHandler(plansService service.MealPlansService, optimizer service.MealOptimizer, planHandler *Handler) *PlansHandler {
	return &PlansHandler{
		plansService: plansService,
		optimizer:    optimizer,
		planHandler:  planHandler,
	}
}

// SavePlan handles POST /api/plans requests.
//
// @Summary      Save an optimized meal plan
// @Description  Optimizes serving sizes for the given meal slots and stores the resulting plan for the given calendar day. Saving twice for the same day replaces the previous plan.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.SaveMealPlanRequest true "Plan day, meal slots, and optional targets"
// @Success      201 {object} dto.SuccessResponse "Saved plan"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/plans [post]
func (h *PlansHandler) SavePlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.SaveMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationMeals, err)
		return
	}

	meals, err := h.planHandler.resolveMeals(c.Request.Context(), req.Meals)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	targets := h.planHandler.resolveTargets(c.Request.Context(), c, req.Targets)

	start := time.Now()
	result := h.optimizer.OptimizeWithTargets(meals, targets)
	metrics.RecordOptimization(time.Since(start), "success")

	userID := c.GetString("user_id")
	plan, err := h.plansService.Save(c.Request.Context(), userID, req.Date, result)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlanDate) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationPlanDate, err)
			return
		}
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "save_plan", "Meal plan saved", map[string]interface{}{
				"date":           req.Date,
				"total_calories": result.Totals.Calories,
			})
		}
	}

	builder.SuccessCreated(plan)
}

// GetPlan handles GET /api/plans/:date requests.
//
// @Summary      Get a meal plan by day
// @Description  Returns the caller's saved plan for the given calendar day
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        date path string true "Plan day (YYYY-MM-DD)"
// @Success      200 {object} dto.SuccessResponse "Saved plan"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No plan for that day"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/plans/{date} [get]
func (h *PlansHandler) GetPlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	plan, err := h.plansService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("date"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if plan == nil {
		builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, nil)
		return
	}

	builder.SuccessOK(plan)
}

// ListPlans handles GET /api/plans requests.
//
// @Summary      List meal plans
// @Description  Returns the caller's saved plans, newest day first
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Saved plans"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/plans [get]
func (h *PlansHandler) ListPlans(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := parseInt(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	plans, err := h.plansService.List(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	builder.SuccessOK(plans)
}

// DeletePlan handles DELETE /api/plans/:date requests.
//
// @Summary      Delete a meal plan
// @Description  Removes the caller's saved plan for the given calendar day
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        date path string true "Plan day (YYYY-MM-DD)"
// @Success      204 "Plan deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No plan for that day"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/plans/{date} [delete]
func (h *PlansHandler) DeletePlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	deleted, err := h.plansService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("date"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if !deleted {
		builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, nil)
		return
	}

	c.Status(http.StatusNoContent)
}

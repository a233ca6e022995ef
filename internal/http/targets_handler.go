package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// TargetsHandler provides HTTP handlers for nutrition-targets routes.
type TargetsHandler struct {
	targetsService service.TargetsService
	// planHandler is notified when targets change so its per-user cache
	// does not serve stale values.
	planHandler *Handler
}

// NewTargetsHandler creates a new TargetsHandler instance.
func NewTargetsHandler(targetsService service.TargetsService, planHandler *Handler) *TargetsHandler {
	return &TargetsHandler{
		targetsService: targetsService,
		planHandler:    planHandler,
	}
}

// GetTargets handles GET /api/targets requests.
//
// @Summary      Get active nutrition targets
// @Description  Returns the caller's active daily nutrition targets, or the service defaults when none are stored
// @Tags         Targets
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Active targets"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/targets [get]
func (h *TargetsHandler) GetTargets(c *gin.Context) {
	builder := NewResponseBuilder(c)

	userID := c.GetString("user_id")
	config, err := h.targetsService.GetActive(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, service.ErrRepositoryNotConfigured) {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if config != nil {
		builder.SuccessOK(config)
		return
	}

	// No stored targets - report the effective defaults
	builder.SuccessOK(map[string]interface{}{
		"targets": h.targetsService.Resolve(c.Request.Context(), userID),
		"source":  "default",
	})
}

// UpdateTargets handles PUT /api/targets requests.
//
// @Summary      Update nutrition targets
// @Description  Stores the caller's daily nutrition targets, versioning the previous configuration
// @Tags         Targets
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.UpdateTargetsRequest true "Daily targets"
// @Success      200 {object} dto.SuccessResponse "Stored targets"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/targets [put]
func (h *TargetsHandler) UpdateTargets(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.UpdateTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	userID := c.GetString("user_id")
	config, err := h.targetsService.Update(c.Request.Context(), userID, req.Targets.ToTargets(), "manual")
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if h.planHandler != nil {
		h.planHandler.InvalidateTargetsCache(userID)
	}

	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "update_targets", "Nutrition targets updated", map[string]interface{}{
				"version": config.Version,
				"source":  config.Source,
			})
		}
	}

	builder.SuccessOK(config)
}

// ListTargets handles GET /api/targets/history requests.
//
// @Summary      List nutrition targets history
// @Description  Returns the caller's targets configurations, newest first
// @Tags         Targets
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Targets history"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/targets/history [get]
func (h *TargetsHandler) ListTargets(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := parseInt(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	configs, err := h.targetsService.List(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	builder.SuccessOK(configs)
}

// ComputeTargets handles POST /api/targets/compute requests.
//
// @Summary      Compute nutrition targets from a profile
// @Description  Derives daily calorie and macro targets from sex, age, height, weight, and activity level. Optionally stores the result as the caller's active targets.
// @Tags         Targets
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.ComputeTargetsRequest true "User profile"
// @Success      200 {object} dto.SuccessResponse "Computed targets"
// @Failure      400 {object} dto.ErrorResponse "Invalid profile"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/targets/compute [post]
func (h *TargetsHandler) ComputeTargets(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.ComputeTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	targets, err := h.targetsService.ComputeFromProfile(service.Profile{
		Sex:           req.Sex,
		Age:           req.Age,
		HeightCM:      req.HeightCM,
		WeightKG:      req.WeightKG,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	if !req.Save {
		builder.SuccessOK(map[string]interface{}{
			"targets": targets,
			"source":  "computed",
			"saved":   false,
		})
		return
	}

	userID := c.GetString("user_id")
	config, err := h.targetsService.Update(c.Request.Context(), userID, targets, "computed")
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if h.planHandler != nil {
		h.planHandler.InvalidateTargetsCache(userID)
	}

	builder.SuccessOK(config)
}

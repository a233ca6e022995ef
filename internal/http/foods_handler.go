package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// FoodsHandler provides HTTP handlers for food catalog routes.
type FoodsHandler struct {
	foodsService service.FoodsService
}

// NewFoodsHandler creates a new FoodsHandler instance.
func NewFoodsHandler(foodsService service.FoodsService) *FoodsHandler {
	return &FoodsHandler{
		foodsService: foodsService,
	}
}

// ListFoods handles GET /api/foods requests.
//
// @Summary      List catalog foods
// @Description  Returns catalog foods, optionally filtered by name prefix and category
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        name query string false "Name prefix filter"
// @Param        category query string false "Category filter"
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Catalog foods"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/foods [get]
func (h *FoodsHandler) ListFoods(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := parseInt(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	foods, err := h.foodsService.List(c.Request.Context(), c.Query("name"), c.Query("category"), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	builder.SuccessOK(foods)
}

// GetFood handles GET /api/foods/:id requests.
//
// @Summary      Get a catalog food
// @Description  Returns a single catalog food by ID
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Food ID"
// @Success      200 {object} dto.SuccessResponse "Catalog food"
// @Failure      400 {object} dto.ErrorResponse "Invalid food ID"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Food not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/foods/{id} [get]
func (h *FoodsHandler) GetFood(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	food, err := h.foodsService.Get(c.Request.Context(), id)
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if food == nil {
		builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, nil)
		return
	}

	builder.SuccessOK(food)
}

// CreateFood handles POST /api/foods requests.
//
// @Summary      Create a catalog food
// @Description  Adds a food with its per-serving macros to the catalog
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.CreateFoodRequest true "Food definition"
// @Success      201 {object} dto.SuccessResponse "Created food"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/foods [post]
func (h *FoodsHandler) CreateFood(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	food := req.ToModel()
	food.CreatedBy = c.GetString("user_id")

	if err := h.foodsService.Create(c.Request.Context(), food); err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "create_food", "Catalog food created", map[string]interface{}{
				"food_id":   food.ID.Hex(),
				"food_name": food.Name,
			})
		}
	}

	builder.SuccessCreated(food)
}

// UpdateFood handles PUT /api/foods/:id requests.
//
// @Summary      Update a catalog food
// @Description  Replaces a catalog food's name, category, and per-serving macros
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Food ID"
// @Param        request body dto.CreateFoodRequest true "Food definition"
// @Success      200 {object} dto.SuccessResponse "Updated food"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Food not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/foods/{id} [put]
func (h *FoodsHandler) UpdateFood(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	var req dto.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	food, err := h.foodsService.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		builder.Error(http.StatusInternalServerError, dto.ErrCodeInternal, err)
		return
	}

	if food == nil {
		builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, nil)
		return
	}

	builder.SuccessOK(food)
}

// DeleteFood handles DELETE /api/foods/:id requests.
//
// @Summary      Delete a catalog food
// @Description  Removes a food from the catalog
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Food ID"
// @Success      204 "Food deleted"
// @Failure      400 {object} dto.ErrorResponse "Invalid food ID"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Food not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/foods/{id} [delete]
func (h *FoodsHandler) DeleteFood(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	deleted, err := h.foodsService.Delete(c.Request.Context(), id)
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

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

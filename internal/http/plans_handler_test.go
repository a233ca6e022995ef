package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

func setupPlansRouter(plansService *mockMealPlansService) *gin.Engine {
	optimizer := service.NewMealOptimizerService()
	planHandler := NewHandler(optimizer, nil, nil)
	handler := NewPlansHandler(plansService, optimizer, planHandler)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})

	api := router.Group("/api")
	api.POST("/plans", handler.SavePlan)
	api.GET("/plans", handler.ListPlans)
	api.GET("/plans/:date", handler.GetPlan)
	api.DELETE("/plans/:date", handler.DeletePlan)
	return router
}

func TestPlansHandler_SavePlan(t *testing.T) {
	savePlanBody := `{"date": "2025-03-14", "meals": [
		{"meal_type": "breakfast", "per_serving": {"calories": 310, "protein": 10, "carbohydrates": 54, "fat": 6}},
		{"meal_type": "lunch", "per_serving": {"calories": 450, "protein": 38, "carbohydrates": 35, "fat": 14}},
		{"meal_type": "dinner", "per_serving": {"calories": 520, "protein": 34, "carbohydrates": 48, "fat": 20}}
	]}`

	t.Run("optimizes and stores the plan", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		plansService.On("Save", mock.Anything, "user-1", "2025-03-14", mock.MatchedBy(func(result model.OptimizationResult) bool {
			return len(result.ServingSizes) == model.MealsPerDay && result.Totals.Calories > 0
		})).Return(&repository.MealPlanDocument{
			UserID: "user-1",
			Date:   "2025-03-14",
		}, nil)

		router := setupPlansRouter(plansService)

		req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(savePlanBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		plansService.AssertExpectations(t)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		plansService.On("Save", mock.Anything, "user-1", "14/03/2025", mock.Anything).
			Return(nil, service.ErrInvalidPlanDate)

		router := setupPlansRouter(plansService)

		body := `{"date": "14/03/2025", "meals": [
			{"meal_type": "breakfast"},
			{"meal_type": "lunch"},
			{"meal_type": "dinner"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects duplicate meal types", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		router := setupPlansRouter(plansService)

		body := `{"date": "2025-03-14", "meals": [
			{"meal_type": "lunch"},
			{"meal_type": "lunch"},
			{"meal_type": "dinner"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		plansService.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing date", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		router := setupPlansRouter(plansService)

		body := `{"meals": [
			{"meal_type": "breakfast"},
			{"meal_type": "lunch"},
			{"meal_type": "dinner"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		plansService.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		plansService.On("Save", mock.Anything, "user-1", "2025-03-14", mock.Anything).
			Return(nil, errors.New("database unavailable"))

		router := setupPlansRouter(plansService)

		req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewBufferString(savePlanBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPlansHandler_GetPlan(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockMealPlansService)
		expectedStatus int
	}{
		{
			name: "returns the stored plan",
			setupMock: func(m *mockMealPlansService) {
				m.On("Get", mock.Anything, "user-1", "2025-03-14").Return(&repository.MealPlanDocument{
					UserID: "user-1",
					Date:   "2025-03-14",
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown day returns 404",
			setupMock: func(m *mockMealPlansService) {
				m.On("Get", mock.Anything, "user-1", "2025-03-14").Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "storage failure returns 500",
			setupMock: func(m *mockMealPlansService) {
				m.On("Get", mock.Anything, "user-1", "2025-03-14").Return(nil, errors.New("database unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plansService := new(mockMealPlansService)
			tt.setupMock(plansService)
			router := setupPlansRouter(plansService)

			req := httptest.NewRequest(http.MethodGet, "/api/plans/2025-03-14", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			plansService.AssertExpectations(t)
		})
	}
}

func TestPlansHandler_ListPlans(t *testing.T) {
	t.Run("lists plans newest first", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		plansService.On("List", mock.Anything, "user-1", 0).Return([]repository.MealPlanDocument{
			{Date: "2025-03-14"},
			{Date: "2025-03-13"},
		}, nil)

		router := setupPlansRouter(plansService)

		req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		plansService.AssertExpectations(t)
	})

	t.Run("forwards the limit filter", func(t *testing.T) {
		plansService := new(mockMealPlansService)
		plansService.On("List", mock.Anything, "user-1", 7).Return([]repository.MealPlanDocument{}, nil)

		router := setupPlansRouter(plansService)

		req := httptest.NewRequest(http.MethodGet, "/api/plans?limit=7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		plansService.AssertExpectations(t)
	})
}

func TestPlansHandler_DeletePlan(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockMealPlansService)
		expectedStatus int
	}{
		{
			name: "deletes the plan",
			setupMock: func(m *mockMealPlansService) {
				m.On("Delete", mock.Anything, "user-1", "2025-03-14").Return(true, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "unknown day returns 404",
			setupMock: func(m *mockMealPlansService) {
				m.On("Delete", mock.Anything, "user-1", "2025-03-14").Return(false, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "storage failure returns 500",
			setupMock: func(m *mockMealPlansService) {
				m.On("Delete", mock.Anything, "user-1", "2025-03-14").Return(false, errors.New("database unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plansService := new(mockMealPlansService)
			tt.setupMock(plansService)
			router := setupPlansRouter(plansService)

			req := httptest.NewRequest(http.MethodDelete, "/api/plans/2025-03-14", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			plansService.AssertExpectations(t)
		})
	}
}

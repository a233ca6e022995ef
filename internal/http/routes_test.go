package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bounswe/bounswe2025group9-sub004/internal/mocks"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// routeMounted reports whether method+path resolves to a handler. Handlers
// may still reject the empty body; only 404 means the route is missing.
func routeMounted(router *gin.Engine, method, path string) bool {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code != http.StatusNotFound
}

func TestNewAuthRoutes(t *testing.T) {
	routes := NewAuthRoutes(mocks.NewMockAuthService(t))

	assert.NotNil(t, routes)
	assert.NotNil(t, routes.handler)
}

func TestAuthRoutes_RegisterPublicRoutes(t *testing.T) {
	routes := NewAuthRoutes(mocks.NewMockAuthService(t))

	router := gin.New()
	routes.RegisterPublicRoutes(router.Group("/api"))

	for _, path := range []string{"/api/auth/login", "/api/auth/register", "/api/auth/refresh"} {
		t.Run(path, func(t *testing.T) {
			assert.True(t, routeMounted(router, http.MethodPost, path))
		})
	}
}

func TestAuthRoutes_RegisterProtectedRoutes(t *testing.T) {
	routes := NewAuthRoutes(mocks.NewMockAuthService(t))

	router := gin.New()
	routes.RegisterProtectedRoutes(router.Group("/api"), &RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
	})

	// Logout mounts; the missing bearer token fails later, not with a 404.
	assert.True(t, routeMounted(router, http.MethodPost, "/api/auth/logout"))
}

func TestAuthRoutes_GetProtectedGroup(t *testing.T) {
	for _, tt := range []struct {
		name       string
		rateLimit  int
		rateWindow time.Duration
	}{
		{"with rate limiting", 100, time.Minute},
		{"without rate limiting", 0, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			routes := NewAuthRoutes(mocks.NewMockAuthService(t))

			router := gin.New()
			protected := routes.GetProtectedGroup(router.Group("/api"), &RouterConfig{
				RateLimit:  tt.rateLimit,
				RateWindow: tt.rateWindow,
			})

			assert.NotNil(t, protected)
		})
	}
}

func TestNewPlanRoutes(t *testing.T) {
	optimizer := service.NewMealOptimizerService()

	t.Run("with all services", func(t *testing.T) {
		routes := NewPlanRoutes(optimizer, new(mockFoodsService), new(mockTargetsService), new(mockMealPlansService))

		assert.NotNil(t, routes)
		assert.NotNil(t, routes.handler)
		assert.NotNil(t, routes.plansHandler)
		assert.NotNil(t, routes.foodsHandler)
		assert.NotNil(t, routes.targetsHandler)
	})

	t.Run("with optimizer only", func(t *testing.T) {
		routes := NewPlanRoutes(optimizer, nil, nil, nil)

		assert.NotNil(t, routes)
		assert.NotNil(t, routes.handler)
		assert.Nil(t, routes.plansHandler)
		assert.Nil(t, routes.foodsHandler)
		assert.Nil(t, routes.targetsHandler)
	})
}

func TestPlanRoutes_RegisterPublicRoutes(t *testing.T) {
	optimizer := service.NewMealOptimizerService()

	t.Run("without persistence only optimize mounts", func(t *testing.T) {
		routes := NewPlanRoutes(optimizer, nil, nil, nil)

		router := gin.New()
		routes.RegisterPublicRoutes(router.Group("/api"))

		assert.True(t, routeMounted(router, http.MethodPost, "/api/plan/optimize"))
		for _, path := range []string{"/api/foods", "/api/plans", "/api/targets"} {
			assert.False(t, routeMounted(router, http.MethodGet, path), "path %s", path)
		}
	})

	t.Run("with persistence the full tree mounts", func(t *testing.T) {
		routes := NewPlanRoutes(optimizer, new(mockFoodsService), new(mockTargetsService), new(mockMealPlansService))

		router := gin.New()
		routes.RegisterPublicRoutes(router.Group("/api"))

		for _, rt := range []struct {
			method string
			path   string
		}{
			{http.MethodPost, "/api/plan/optimize"},
			{http.MethodPost, "/api/plans"},
			{http.MethodGet, "/api/plans/2025-03-14"},
			{http.MethodGet, "/api/foods"},
			{http.MethodPost, "/api/foods"},
			{http.MethodGet, "/api/targets"},
			{http.MethodPut, "/api/targets"},
			{http.MethodGet, "/api/targets/history"},
			{http.MethodPost, "/api/targets/compute"},
		} {
			assert.True(t, routeMounted(router, rt.method, rt.path), "%s %s", rt.method, rt.path)
		}
	})
}

func TestPlanRoutes_GetHandler(t *testing.T) {
	routes := NewPlanRoutes(service.NewMealOptimizerService(), nil, nil, nil)

	assert.Equal(t, routes.handler, routes.GetHandler())
}

func TestPlanRoutes_RegisterProtectedRoutes(t *testing.T) {
	routes := NewPlanRoutes(service.NewMealOptimizerService(), nil, nil, nil)

	router := gin.New()
	routes.RegisterProtectedRoutes(router.Group("/api"), &RouterConfig{})

	assert.True(t, routeMounted(router, http.MethodPost, "/api/plan/optimize"))
}

func TestPlanRoutes_GetPermissionIDs(t *testing.T) {
	routes := NewPlanRoutes(service.NewMealOptimizerService(), nil, nil, nil)

	t.Run("without permission service", func(t *testing.T) {
		perms := routes.getPermissionIDs(&RouterConfig{})

		assert.Equal(t, planPermissionIDs{}, perms)
	})

	t.Run("with permission service", func(t *testing.T) {
		mockPerms := new(mocks.MockPermissionService)
		for resource, ids := range map[string][2]string{
			"plans":   {"perm-1", "perm-2"},
			"foods":   {"perm-3", "perm-4"},
			"targets": {"perm-5", "perm-6"},
		} {
			mockPerms.On("GetPermissionIDByResourceAndAction", mock.Anything, resource, "read").Return(ids[0])
			mockPerms.On("GetPermissionIDByResourceAndAction", mock.Anything, resource, "write").Return(ids[1])
		}

		perms := routes.getPermissionIDs(&RouterConfig{PermissionService: mockPerms})

		assert.Equal(t, "perm-1", perms.plansRead)
		assert.Equal(t, "perm-2", perms.plansWrite)
		assert.Equal(t, "perm-3", perms.foodsRead)
		assert.Equal(t, "perm-4", perms.foodsWrite)
		assert.Equal(t, "perm-5", perms.targetsRead)
		assert.Equal(t, "perm-6", perms.targetsWrite)
	})
}

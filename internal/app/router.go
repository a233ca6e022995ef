// Package app provides router configuration.
package app

import (
	"github.com/bounswe/bounswe2025group9-sub004/config"
	"github.com/bounswe/bounswe2025group9-sub004/internal/http"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	optimizer service.MealOptimizer,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	// Initialize domain services backed by the database
	var foodsService service.FoodsService
	var targetsService service.TargetsService
	var mealPlansService service.MealPlansService
	if dbComponents != nil {
		if dbComponents.FoodsRepo != nil {
			foodsService = service.NewFoodsService(dbComponents.FoodsRepo)
		}
		if dbComponents.TargetsRepo != nil {
			targetsService = service.NewTargetsService(dbComponents.TargetsRepo)
		}
		if dbComponents.MealPlansRepo != nil {
			mealPlansService = service.NewMealPlansService(dbComponents.MealPlansRepo)
		}
	}

	handler := http.NewHandler(optimizer, foodsService, targetsService)
	healthHandler := http.NewHealthHandler()

	// Register circuit breakers for health monitoring
	if dbComponents != nil {
		if dbComponents.FoodsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_foods", dbComponents.FoodsCircuitBreaker)
		}
		if dbComponents.TargetsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_targets", dbComponents.TargetsCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	// Initialize authentication service
	var authService service.AuthService
	if dbComponents != nil && dbComponents.UserRepo != nil {
		authService = service.NewAuthService(
			dbComponents.UserRepo,
			dbComponents.RoleRepo,
			dbComponents.TokenRepo,
			cfg.Auth,
		)
	}

	// Initialize permission service
	var permissionService service.PermissionService
	if dbComponents != nil && dbComponents.PermissionRepo != nil {
		permissionService = service.NewPermissionService(dbComponents.PermissionRepo)
	}

	// Initialize role service
	var roleService service.RoleService
	if dbComponents != nil && dbComponents.RoleRepo != nil {
		roleService = service.NewRoleService(dbComponents.RoleRepo)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		FoodsService:      foodsService,
		TargetsService:    targetsService,
		MealPlansService:  mealPlansService,
		AuthService:       authService,
		RoleService:       roleService,
		PermissionService: permissionService,
		Optimizer:         optimizer,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

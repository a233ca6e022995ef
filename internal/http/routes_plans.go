package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// PlanRoutes handles meal-plan related route registration: the optimize
// endpoint, persisted plans, the food catalog, and nutrition targets.
type PlanRoutes struct {
	handler        *Handler
	plansHandler   *PlansHandler
	foodsHandler   *FoodsHandler
	targetsHandler *TargetsHandler
}

// NewPlanRoutes creates a new PlanRoutes instance.
func NewPlanRoutes(optimizer service.MealOptimizer, foodsService service.FoodsService, targetsService service.TargetsService, plansService service.MealPlansService) *PlanRoutes {
	handler := NewHandler(optimizer, foodsService, targetsService)

	var plansHandler *PlansHandler
	if plansService != nil {
		plansHandler = NewPlansHandler(plansService, optimizer, handler)
	}

	var foodsHandler *FoodsHandler
	if foodsService != nil {
		foodsHandler = NewFoodsHandler(foodsService)
	}

	var targetsHandler *TargetsHandler
	if targetsService != nil {
		targetsHandler = NewTargetsHandler(targetsService, handler)
	}

	return &PlanRoutes{
		handler:        handler,
		plansHandler:   plansHandler,
		foodsHandler:   foodsHandler,
		targetsHandler: targetsHandler,
	}
}

// RegisterPublicRoutes registers public plan routes (when auth is disabled).
func (r *PlanRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/plan/optimize", r.handler.OptimizePlan)

	if r.plansHandler != nil {
		rg.POST("/plans", r.plansHandler.SavePlan)
		rg.GET("/plans", r.plansHandler.ListPlans)
		rg.GET("/plans/:date", r.plansHandler.GetPlan)
		rg.DELETE("/plans/:date", r.plansHandler.DeletePlan)
	}

	if r.foodsHandler != nil {
		rg.GET("/foods", r.foodsHandler.ListFoods)
		rg.GET("/foods/:id", r.foodsHandler.GetFood)
		rg.POST("/foods", r.foodsHandler.CreateFood)
		rg.PUT("/foods/:id", r.foodsHandler.UpdateFood)
		rg.DELETE("/foods/:id", r.foodsHandler.DeleteFood)
	}

	if r.targetsHandler != nil {
		rg.GET("/targets", r.targetsHandler.GetTargets)
		rg.PUT("/targets", r.targetsHandler.UpdateTargets)
		rg.GET("/targets/history", r.targetsHandler.ListTargets)
		rg.POST("/targets/compute", r.targetsHandler.ComputeTargets)
	}
}

// RegisterProtectedRoutes registers protected plan routes (when auth is enabled).
func (r *PlanRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	perms := r.getPermissionIDs(cfg)

	// Helper to create authorization middleware
	authMiddleware := func(permID string) []gin.HandlerFunc {
		if permID != "" && cfg.RoleService != nil && cfg.PermissionService != nil {
			return []gin.HandlerFunc{
				middleware.RequireAuthorization(middleware.AuthorizationConfig{
					RequiredPermissions: []string{permID},
				}, cfg.RoleService, cfg.PermissionService),
			}
		}
		return nil
	}

	register := func(method func(string, ...gin.HandlerFunc) gin.IRoutes, path, permID string, h gin.HandlerFunc) {
		if auth := authMiddleware(permID); auth != nil {
			method(path, append(auth, h)...)
		} else {
			method(path, h)
		}
	}

	register(protected.POST, "/plan/optimize", perms.plansWrite, r.handler.OptimizePlan)

	if r.plansHandler != nil {
		register(protected.POST, "/plans", perms.plansWrite, r.plansHandler.SavePlan)
		register(protected.GET, "/plans", perms.plansRead, r.plansHandler.ListPlans)
		register(protected.GET, "/plans/:date", perms.plansRead, r.plansHandler.GetPlan)
		register(protected.DELETE, "/plans/:date", perms.plansWrite, r.plansHandler.DeletePlan)
	}

	if r.foodsHandler != nil {
		register(protected.GET, "/foods", perms.foodsRead, r.foodsHandler.ListFoods)
		register(protected.GET, "/foods/:id", perms.foodsRead, r.foodsHandler.GetFood)
		register(protected.POST, "/foods", perms.foodsWrite, r.foodsHandler.CreateFood)
		register(protected.PUT, "/foods/:id", perms.foodsWrite, r.foodsHandler.UpdateFood)
		register(protected.DELETE, "/foods/:id", perms.foodsWrite, r.foodsHandler.DeleteFood)
	}

	if r.targetsHandler != nil {
		register(protected.GET, "/targets", perms.targetsRead, r.targetsHandler.GetTargets)
		register(protected.PUT, "/targets", perms.targetsWrite, r.targetsHandler.UpdateTargets)
		register(protected.GET, "/targets/history", perms.targetsRead, r.targetsHandler.ListTargets)
		register(protected.POST, "/targets/compute", perms.targetsWrite, r.targetsHandler.ComputeTargets)
	}
}

// planPermissionIDs holds resolved permission IDs for plan-related resources.
type planPermissionIDs struct {
	plansRead    string
	plansWrite   string
	foodsRead    string
	foodsWrite   string
	targetsRead  string
	targetsWrite string
}

// getPermissionIDs fetches permission IDs from the permission service.
func (r *PlanRoutes) getPermissionIDs(cfg *RouterConfig) planPermissionIDs {
	if cfg.PermissionService == nil {
		return planPermissionIDs{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return planPermissionIDs{
		plansRead:    cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "plans", "read"),
		plansWrite:   cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "plans", "write"),
		foodsRead:    cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "foods", "read"),
		foodsWrite:   cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "foods", "write"),
		targetsRead:  cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "targets", "read"),
		targetsWrite: cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, "targets", "write"),
	}
}

// GetHandler returns the underlying optimize handler.
func (r *PlanRoutes) GetHandler() *Handler {
	return r.handler
}

package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bounswe/bounswe2025group9-sub004/internal/metrics"
	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// RouterConfig collects everything the router needs: limits, auth mode,
// and the services the route groups hand to their handlers.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	APIKeys           map[string]bool
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	FoodsService      service.FoodsService
	TargetsService    service.TargetsService
	MealPlansService  service.MealPlansService
	AuthService       service.AuthService
	RoleService       service.RoleService
	PermissionService service.PermissionService
	Optimizer         service.MealOptimizer
}

// DefaultRouterConfig returns a config suitable for local development:
// open routes, modest rate limit.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		EnableAuth: false,
	}
}

// NewRouter assembles the Gin engine. Infrastructure routes (health,
// metrics, swagger) stay outside /api; business routes mount under /api as
// either an authenticated or an open tree depending on whether an
// AuthService is configured.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	installGlobalMiddleware(router, &cfg)
	mountInfrastructure(router, healthHandler, &cfg)

	api := router.Group("/api")
	installAPIMiddleware(api, &cfg)

	if cfg.AuthService != nil {
		mountAuthenticatedAPI(api, handler, &cfg)
	} else {
		mountOpenAPI(api, handler, &cfg)
	}

	return router
}

// corsPolicy builds the CORS config, defaulting origins to the local web
// frontend.
func corsPolicy(cfg *RouterConfig) cors.Config {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Accept-Language", "X-CSRF-Token", "Authorization", "X-Refresh-Token",
			"accept", "Cache-Control", "X-Requested-With", "X-API-Key",
			"Idempotency-Key", "X-Request-ID",
		},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

// installGlobalMiddleware wires the stack every request passes through.
// Order matters: the request ID must exist before anything logs, and
// recovery must wrap everything below it.
func installGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(cors.New(corsPolicy(cfg)))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	// Handlers pull the logging service back out for audit entries.
	router.Use(func(c *gin.Context) {
		c.Set("logging_service", cfg.LoggingService)
		c.Next()
	})

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// mountInfrastructure registers health probes, the Prometheus endpoint, and
// the swagger UI. Swagger goes behind basic auth when credentials are set.
func mountInfrastructure(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		docs := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		return
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// installAPIMiddleware adds the /api-only middleware: idempotency for
// retried writes, and API-key auth for deployments that gate the API
// without accounts.
func installAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableIdempotency {
		api.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}

	if cfg.EnableAuth && cfg.AuthService == nil && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
}

// mountAuthenticatedAPI mounts login/register/refresh openly and the plan,
// food, and target routes behind JWT auth.
func mountAuthenticatedAPI(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(cfg.AuthService)
	authRoutes.RegisterPublicRoutes(api)

	protected := authRoutes.GetProtectedGroup(api, cfg)
	protected.POST("/auth/logout", authRoutes.handler.Logout)

	planRoutes := NewPlanRoutes(handler.optimizer, cfg.FoodsService, cfg.TargetsService, cfg.MealPlansService)
	planRoutes.RegisterProtectedRoutes(protected, cfg)
}

// mountOpenAPI mounts the plan routes without authentication.
func mountOpenAPI(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	if handler == nil {
		return
	}
	planRoutes := NewPlanRoutes(handler.optimizer, cfg.FoodsService, cfg.TargetsService, cfg.MealPlansService)
	planRoutes.RegisterPublicRoutes(api)
}

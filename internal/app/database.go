// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bounswe/bounswe2025group9-sub004/config"
	"github.com/bounswe/bounswe2025group9-sub004/internal/circuitbreaker"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/repository"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	FoodsRepo             repository.FoodsRepositoryInterface
	TargetsRepo           repository.TargetsRepositoryInterface
	MealPlansRepo         repository.MealPlansRepositoryInterface
	LoggingService        service.LoggingService
	FoodsCircuitBreaker   *circuitbreaker.CircuitBreaker
	TargetsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
	UserRepo              repository.UserRepositoryInterface
	RoleRepo              repository.RoleRepositoryInterface
	PermissionRepo        repository.PermissionRepositoryInterface
	TokenRepo             repository.TokenRepositoryInterface
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	// Set TTL for logs
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	// Initialize circuit breakers
	newCB := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             name,
		})
	}
	foodsCB := newCB("mongodb-foods")
	targetsCB := newCB("mongodb-targets")
	logsCB := newCB("mongodb-logs")

	// Initialize repositories
	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	foodsRepo := repository.NewFoodsRepository(db)
	foodsRepoWithCB := repository.NewFoodsRepositoryWithCircuitBreaker(foodsRepo, foodsCB)

	targetsRepo := repository.NewTargetsRepository(db)
	targetsRepoWithCB := repository.NewTargetsRepositoryWithCircuitBreaker(targetsRepo, targetsCB)

	mealPlansRepo := repository.NewMealPlansRepository(db)

	// Initialize auth repositories
	userRepo := repository.NewUserRepository(db.Database)
	roleRepo := repository.NewRoleRepository(db.Database)
	permissionRepo := repository.NewPermissionRepository(db.Database)
	tokenRepo := repository.NewTokenRepository(db.Database)

	// Seed the food catalog if it is empty
	if err := initializeDefaultFoods(foodsRepoWithCB); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default foods")
	}

	// Initialize default roles and permissions
	if err := initializeDefaultRolesAndPermissions(roleRepo, permissionRepo); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default roles and permissions")
	}

	return &DatabaseComponents{
		FoodsRepo:             foodsRepoWithCB,
		TargetsRepo:           targetsRepoWithCB,
		MealPlansRepo:         mealPlansRepo,
		LoggingService:        loggingService,
		FoodsCircuitBreaker:   foodsCB,
		TargetsCircuitBreaker: targetsCB,
		LogsCircuitBreaker:    logsCB,
		UserRepo:              userRepo,
		RoleRepo:              roleRepo,
		PermissionRepo:        permissionRepo,
		TokenRepo:             tokenRepo,
	}
}

// defaultFoods is the starter catalog inserted into an empty database.
var defaultFoods = []model.FoodItem{
	{
		Name:         "Oatmeal with berries",
		Category:     "grain",
		ServingLabel: "1 bowl (250g)",
		PerServing:   model.Nutrition{Calories: 310, Protein: 10, Carbohydrates: 54, Fat: 6},
	},
	{
		Name:         "Grilled chicken bowl",
		Category:     "protein",
		ServingLabel: "1 bowl (350g)",
		PerServing:   model.Nutrition{Calories: 450, Protein: 38, Carbohydrates: 35, Fat: 14},
	},
	{
		Name:         "Salmon with rice",
		Category:     "protein",
		ServingLabel: "1 plate (400g)",
		PerServing:   model.Nutrition{Calories: 520, Protein: 34, Carbohydrates: 48, Fat: 20},
	},
	{
		Name:         "Lentil soup",
		Category:     "legume",
		ServingLabel: "1 bowl (300g)",
		PerServing:   model.Nutrition{Calories: 230, Protein: 14, Carbohydrates: 36, Fat: 4},
	},
}

// initializeDefaultFoods inserts the starter catalog when no foods exist.
func initializeDefaultFoods(repo repository.FoodsRepositoryInterface) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := repo.List(ctx, "", "", 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range defaultFoods {
		food := defaultFoods[i]
		food.CreatedBy = "system"
		if err := repo.Create(ctx, &food); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(defaultFoods)).Msg("Seeded default food catalog")

	return nil
}

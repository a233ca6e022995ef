// Package app provides service initialization.
package app

import (
	"github.com/bounswe/bounswe2025group9-sub004/config"
	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Optimizer service.MealOptimizer
}

// InitializeServices initializes business logic services.
func InitializeServices(cfg config.CacheConfig) *ServiceComponents {
	var opts []service.Option

	if targets := targetsFromConfig(cfg.DefaultTargets); !targets.IsZero() {
		opts = append(opts, service.WithTargets(targets))
	}

	if cfg.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Size, cfg.TTL))
	}

	optimizer := service.NewMealOptimizerService(opts...)

	return &ServiceComponents{
		Optimizer: optimizer,
	}
}

// targetsFromConfig builds targets from the configured
// calories,protein,carbohydrates,fat values. Returns zero targets when the
// slice does not hold exactly four values.
func targetsFromConfig(values []float64) model.NutritionTargets {
	if len(values) != 4 {
		return model.NutritionTargets{}
	}
	return model.NutritionTargets{
		Calories:      values[0],
		Protein:       values[1],
		Carbohydrates: values[2],
		Fat:           values[3],
	}
}

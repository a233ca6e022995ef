package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service/cache"
)

// Serving-size bounds. Every multiplier the optimizer returns lies in
// [MinServingSize, MaxServingSize], rounded to two decimals.
const (
	MinServingSize = 0.5
	MaxServingSize = 12.0
)

const (
	// calorieAdequacy is the fraction of the calorie target at which a day
	// counts as calorically adequate.
	calorieAdequacy = 0.95
	// proteinAdequacy is the fraction of the protein target at which a day
	// counts as adequate on protein.
	proteinAdequacy = 0.90
	// rescueThreshold is the fraction of the calorie target below which the
	// base scale is applied per slot as a rescue mechanism.
	rescueThreshold = 0.80
	// baseScaleBuffer is the overshoot buffer on the day-wide base scale.
	baseScaleBuffer = 1.05
	// proteinShareBuffer is the overshoot buffer on the per-meal protein share.
	proteinShareBuffer = 1.1
	// correctionBuffer is the overshoot buffer on the global correction pass.
	correctionBuffer = 1.02
	// fallbackBaseScale is used for days whose current calories are zero.
	fallbackBaseScale = 5.0
)

// OptimizeServingSizes computes per-slot serving-size multipliers that bring
// a day's aggregate nutrition close to the daily targets.
//
// The heuristic runs in two phases: an independent per-slot pass that gives
// each meal an even share of the calorie and protein targets, then a
// day-wide correction pass that scales every assigned slot by a single
// factor when the aggregate still falls short. Placeholder slots keep a
// multiplier of exactly 1.0 and never contribute to totals.
//
// The function is pure and deterministic: identical inputs always produce
// identical output, and the returned vector has one entry per input slot.
func OptimizeServingSizes(meals []model.MealAssignment, targets model.NutritionTargets) []float64 {
	sizes := make([]float64, len(meals))
	for i := range sizes {
		sizes[i] = 1.0
	}
	if len(meals) == 0 {
		return sizes
	}

	// Day totals at multiplier 1.0. Placeholders are excluded.
	var current model.Nutrition
	for _, m := range meals {
		if !m.Assigned {
			continue
		}
		current = current.Add(m.PerServing)
	}

	// Already adequate on calories and protein: leave every slot at 1.0.
	if current.Calories >= calorieAdequacy*targets.Calories &&
		current.Protein >= proteinAdequacy*targets.Protein {
		return sizes
	}

	baseScale := fallbackBaseScale
	if current.Calories > 0 {
		baseScale = targets.Calories * baseScaleBuffer / current.Calories
	}

	slots := float64(len(meals))
	proteinNeed := targets.Protein - current.Protein

	for i, m := range meals {
		if !m.Assigned {
			continue
		}
		candidate := 1.0
		if m.PerServing.Calories > 0 {
			if share := (targets.Calories / slots) / m.PerServing.Calories; share > candidate {
				candidate = share
			}
		}
		if proteinNeed > 0 && m.PerServing.Protein > 0 {
			if share := (targets.Protein / slots * proteinShareBuffer) / m.PerServing.Protein; share > candidate {
				candidate = share
			}
		}
		// Rescue only severely under-filled days, and only for slots that
		// contribute calories to scale toward.
		if m.PerServing.Calories > 0 && current.Calories < rescueThreshold*targets.Calories && baseScale > candidate {
			candidate = baseScale
		}
		sizes[i] = clampServingSize(candidate)
	}

	// Correction pass: if the day still misses the calorie target, scale
	// every assigned slot by the largest per-macro catch-up ratio.
	scaled := scaledTotals(meals, sizes)
	if scaled.Calories < calorieAdequacy*targets.Calories {
		correction := 1.0
		for _, pair := range [4][2]float64{
			{targets.Calories, scaled.Calories},
			{targets.Protein, scaled.Protein},
			{targets.Carbohydrates, scaled.Carbohydrates},
			{targets.Fat, scaled.Fat},
		} {
			target, total := pair[0], pair[1]
			if total > 0 && total < calorieAdequacy*target {
				if ratio := target * correctionBuffer / total; ratio > correction {
					correction = ratio
				}
			}
		}
		if correction > 1.0 {
			for i, m := range meals {
				if !m.Assigned {
					continue
				}
				sizes[i] = clampServingSize(sizes[i] * correction)
			}
		}
	}

	return sizes
}

// clampServingSize bounds a multiplier to [MinServingSize, MaxServingSize]
// and rounds it to two decimals.
func clampServingSize(v float64) float64 {
	if v < MinServingSize {
		v = MinServingSize
	}
	if v > MaxServingSize {
		v = MaxServingSize
	}
	return math.Round(v*100) / 100
}

// scaledTotals returns the day aggregate at the given multipliers.
func scaledTotals(meals []model.MealAssignment, sizes []float64) model.Nutrition {
	var totals model.Nutrition
	for i, m := range meals {
		if !m.Assigned {
			continue
		}
		totals = totals.Add(m.PerServing.Scale(sizes[i]))
	}
	return totals
}

// MealOptimizer defines the interface for serving-size optimization.
type MealOptimizer interface {
	Optimize(meals []model.MealAssignment) model.OptimizationResult
	OptimizeWithTargets(meals []model.MealAssignment, targets model.NutritionTargets) model.OptimizationResult
	// InvalidateCache clears the optimization cache (useful when the
	// default targets change).
	InvalidateCache()
}

// Option configures a MealOptimizerService.
type Option func(*MealOptimizerService)

// MealOptimizerService implements MealOptimizer around the pure
// OptimizeServingSizes function, with optional result caching.
type MealOptimizerService struct {
	targets model.NutritionTargets
	cache   cache.Cache
}

// NewMealOptimizerService creates a new MealOptimizerService with the given options.
func NewMealOptimizerService(opts ...Option) *MealOptimizerService {
	s := &MealOptimizerService{
		targets: model.DefaultNutritionTargets,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTargets sets the default daily targets used when a request carries none.
func WithTargets(targets model.NutritionTargets) Option {
	return func(s *MealOptimizerService) {
		if !targets.IsZero() {
			s.targets = targets
		}
	}
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *MealOptimizerService) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *MealOptimizerService) {
		s.cache = c
	}
}

// Optimize computes serving sizes against the service's default targets.
func (s *MealOptimizerService) Optimize(meals []model.MealAssignment) model.OptimizationResult {
	return s.OptimizeWithTargets(meals, s.targets)
}

// OptimizeWithTargets computes serving sizes against explicit targets.
func (s *MealOptimizerService) OptimizeWithTargets(meals []model.MealAssignment, targets model.NutritionTargets) model.OptimizationResult {
	if len(meals) == 0 {
		return model.Empty(0)
	}
	if targets.IsZero() {
		targets = s.targets
	}

	key := optimizationKey(meals, targets)
	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			return result
		}
	}

	result := buildResult(meals, targets, OptimizeServingSizes(meals, targets))

	if s.cache != nil {
		s.cache.Set(key, result)
	}

	return result
}

// InvalidateCache clears the optimization cache.
func (s *MealOptimizerService) InvalidateCache() {
	if s.cache != nil {
		if cacheWithClear, ok := s.cache.(interface{ Clear() }); ok {
			cacheWithClear.Clear()
		}
	}
}

// buildResult assembles the per-slot breakdown and day totals.
func buildResult(meals []model.MealAssignment, targets model.NutritionTargets, sizes []float64) model.OptimizationResult {
	portions := make([]model.MealPortion, len(meals))
	var totals model.Nutrition
	for i, m := range meals {
		nutrition := model.Nutrition{}
		if m.Assigned {
			nutrition = m.PerServing.Scale(sizes[i])
			totals = totals.Add(nutrition)
		}
		portions[i] = model.MealPortion{
			MealType:    m.MealType,
			FoodID:      m.FoodID,
			FoodName:    m.FoodName,
			ServingSize: sizes[i],
			Nutrition:   nutrition,
		}
	}
	return model.OptimizationResult{
		ServingSizes: sizes,
		Portions:     portions,
		Totals:       totals,
		Targets:      targets,
	}
}

// optimizationKey builds a canonical cache key from the optimizer inputs.
// The optimizer is deterministic, so equal keys imply equal results.
func optimizationKey(meals []model.MealAssignment, targets model.NutritionTargets) string {
	var b strings.Builder
	b.Grow(32 * (len(meals) + 1))
	appendMacro := func(v float64) {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte(',')
	}
	for _, m := range meals {
		if !m.Assigned {
			b.WriteString("-;")
			continue
		}
		appendMacro(m.PerServing.Calories)
		appendMacro(m.PerServing.Protein)
		appendMacro(m.PerServing.Carbohydrates)
		appendMacro(m.PerServing.Fat)
		b.WriteByte(';')
	}
	b.WriteByte('|')
	appendMacro(targets.Calories)
	appendMacro(targets.Protein)
	appendMacro(targets.Carbohydrates)
	appendMacro(targets.Fat)
	return b.String()
}

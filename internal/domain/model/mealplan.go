package model

// Meal slot labels for the three fixed daily meal positions.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// MealsPerDay is the fixed number of meal slots in a daily assignment.
const MealsPerDay = 3

// MealTypes lists the slot labels in their fixed order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner}

// MealAssignment is one slot of a daily meal assignment. A slot without a
// valid catalog food (Assigned == false) is a zero-nutrition placeholder:
// it keeps a serving-size multiplier of 1.0 and is excluded from totals.
type MealAssignment struct {
	// MealType is one of breakfast, lunch, dinner.
	MealType string `json:"meal_type" example:"breakfast"`
	// FoodID references the catalog entry, empty for placeholder slots.
	FoodID string `json:"food_id,omitempty"`
	// FoodName is the resolved catalog label.
	FoodName string `json:"food_name,omitempty" example:"Oatmeal with berries"`
	// Assigned is true when the slot holds a valid catalog food.
	Assigned bool `json:"assigned"`
	// PerServing holds the food's macros for one reference serving.
	PerServing Nutrition `json:"per_serving"`
}

// MealPortion is one slot of an optimization result: the assignment plus
// the computed serving-size multiplier and the macros it implies.
//
// @Description A meal slot with its computed serving-size multiplier
type MealPortion struct {
	MealType string  `json:"meal_type" example:"lunch"`
	FoodID   string  `json:"food_id,omitempty"`
	FoodName string  `json:"food_name,omitempty"`
	// ServingSize is the multiplier applied to the reference serving,
	// always within [0.5, 12.0] and rounded to 2 decimals.
	ServingSize float64 `json:"serving_size" example:"1.75"`
	// Nutrition holds the slot macros scaled by ServingSize.
	Nutrition Nutrition `json:"nutrition"`
}

// OptimizationResult represents the complete result of a serving-size
// optimization for one day.
//
// @Description Serving-size optimization result for one day
type OptimizationResult struct {
	// ServingSizes is the per-slot multiplier vector, parallel to the
	// input assignment. Every entry lies in [0.5, 12.0].
	ServingSizes []float64 `json:"serving_sizes"`
	// Portions is the per-slot breakdown with scaled macros.
	Portions []MealPortion `json:"portions"`
	// Totals is the day aggregate at the computed serving sizes.
	Totals Nutrition `json:"totals"`
	// Targets echoes the daily targets the optimizer aimed for.
	Targets NutritionTargets `json:"targets"`
}

// Empty returns an OptimizationResult with unit multipliers for a day of
// the given size. Used when there is nothing to optimize.
func Empty(slots int) OptimizationResult {
	sizes := make([]float64, slots)
	for i := range sizes {
		sizes[i] = 1.0
	}
	return OptimizationResult{
		ServingSizes: sizes,
		Portions:     []MealPortion{},
	}
}

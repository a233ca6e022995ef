// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"

// NutritionRequest carries per-serving or target macro values.
// All values are non-negative; calories in kcal, macros in grams.
type NutritionRequest struct {
	Calories      float64 `json:"calories" binding:"gte=0" example:"450"`
	Protein       float64 `json:"protein" binding:"gte=0" example:"32"`
	Carbohydrates float64 `json:"carbohydrates" binding:"gte=0" example:"40"`
	Fat           float64 `json:"fat" binding:"gte=0" example:"15"`
} // @name NutritionRequest

// ToNutrition converts the request values to a domain nutrition vector.
func (n *NutritionRequest) ToNutrition() model.Nutrition {
	return model.Nutrition{
		Calories:      n.Calories,
		Protein:       n.Protein,
		Carbohydrates: n.Carbohydrates,
		Fat:           n.Fat,
	}
}

// ToTargets converts the request values to domain nutrition targets.
func (n *NutritionRequest) ToTargets() model.NutritionTargets {
	return model.NutritionTargets{
		Calories:      n.Calories,
		Protein:       n.Protein,
		Carbohydrates: n.Carbohydrates,
		Fat:           n.Fat,
	}
}

// MealSlotRequest describes one of the three daily meal slots.
//
// A slot references a catalog food by ID or supplies per-serving macros
// inline. A slot with neither is treated as an unassigned placeholder and
// keeps a serving size of 1.0.
type MealSlotRequest struct {
	// MealType identifies the slot: breakfast, lunch, or dinner.
	MealType string `json:"meal_type" binding:"required,oneof=breakfast lunch dinner" example:"breakfast"`
	// FoodID is the catalog identifier of the assigned food, if any.
	FoodID string `json:"food_id,omitempty" example:"665f1f77bcf86cd799439011"`
	// PerServing carries inline per-serving macros, overriding FoodID.
	PerServing *NutritionRequest `json:"per_serving,omitempty"`
} // @name MealSlotRequest

// OptimizePlanRequest represents the JSON request body for the serving-size
// optimization endpoint.
//
// Exactly three meal slots are required, one per meal type. Targets are
// optional - if not provided, the caller's stored targets (or the service
// defaults) are used.
//
// @Description Request to optimize daily serving sizes for three meals
type OptimizePlanRequest struct {
	// Meals holds the breakfast, lunch, and dinner slots.
	Meals []MealSlotRequest `json:"meals" binding:"required,len=3,dive"`
	// Targets optionally overrides the caller's daily nutrition targets.
	Targets *NutritionRequest `json:"targets,omitempty"`
} // @name OptimizePlanRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidMeals is returned when the meals array is malformed.
	ErrInvalidMeals = &ValidationError{
		Field:   "meals",
		Message: "exactly three meal slots are required, one per meal type",
	}
	// ErrInvalidTargets is returned when target values are negative.
	ErrInvalidTargets = &ValidationError{
		Field:   "targets",
		Message: "values must be non-negative numbers",
	}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *OptimizePlanRequest) Validate() error {
	if len(r.Meals) != model.MealsPerDay {
		return ErrInvalidMeals
	}
	seen := make(map[string]bool, model.MealsPerDay)
	for _, meal := range r.Meals {
		if seen[meal.MealType] {
			return ErrInvalidMeals
		}
		seen[meal.MealType] = true
	}
	if r.Targets != nil {
		if r.Targets.Calories < 0 || r.Targets.Protein < 0 ||
			r.Targets.Carbohydrates < 0 || r.Targets.Fat < 0 {
			return ErrInvalidTargets
		}
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// SaveMealPlanRequest represents the JSON request body for persisting an
// optimized plan for a calendar day.
type SaveMealPlanRequest struct {
	// Date is the plan day in YYYY-MM-DD form.
	Date string `json:"date" binding:"required" example:"2025-03-14"`
	// Meals holds the breakfast, lunch, and dinner slots.
	Meals []MealSlotRequest `json:"meals" binding:"required,len=3,dive"`
	// Targets optionally overrides the caller's daily nutrition targets.
	Targets *NutritionRequest `json:"targets,omitempty"`
} // @name SaveMealPlanRequest

// Validate performs custom validation on the request.
func (r *SaveMealPlanRequest) Validate() error {
	opt := OptimizePlanRequest{Meals: r.Meals, Targets: r.Targets}
	return opt.Validate()
}

// CreateFoodRequest represents the JSON request body for adding a catalog food.
type CreateFoodRequest struct {
	// Name is the display name of the food.
	Name string `json:"name" binding:"required" example:"Grilled chicken bowl"`
	// Category groups foods in the catalog (e.g. "protein", "grain").
	Category string `json:"category,omitempty" example:"protein"`
	// ServingLabel describes one serving in human terms.
	ServingLabel string `json:"serving_label,omitempty" example:"1 bowl (350g)"`
	// PerServing holds the macros for a single serving.
	PerServing NutritionRequest `json:"per_serving" binding:"required"`
} // @name CreateFoodRequest

// ToModel converts the request into a catalog food item.
func (r *CreateFoodRequest) ToModel() *model.FoodItem {
	return &model.FoodItem{
		Name:         r.Name,
		Category:     r.Category,
		ServingLabel: r.ServingLabel,
		PerServing:   r.PerServing.ToNutrition(),
	}
}

// UpdateTargetsRequest represents the JSON request body for setting a user's
// daily nutrition targets manually.
type UpdateTargetsRequest struct {
	Targets NutritionRequest `json:"targets" binding:"required"`
} // @name UpdateTargetsRequest

// ComputeTargetsRequest represents the JSON request body for deriving daily
// targets from a user profile.
type ComputeTargetsRequest struct {
	Sex           string  `json:"sex" binding:"required,oneof=male female" example:"female"`
	Age           int     `json:"age" binding:"required,gt=0,lte=130" example:"29"`
	HeightCM      float64 `json:"height_cm" binding:"required,gt=0" example:"168"`
	WeightKG      float64 `json:"weight_kg" binding:"required,gt=0" example:"63.5"`
	ActivityLevel string  `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active" example:"moderate"`
	// Save stores the computed targets as the caller's active targets.
	Save bool `json:"save,omitempty"`
} // @name ComputeTargetsRequest

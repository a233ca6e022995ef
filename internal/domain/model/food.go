// Package model defines the core domain entities for the meal-plan service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nutrition holds macro values for one reference serving of a food,
// or an aggregate across several servings.
//
// @Description Macro nutrition values (calories in kcal, macros in grams)
// @Example {"calories": 200, "protein": 10, "carbohydrates": 25, "fat": 7}
type Nutrition struct {
	// Calories in kcal
	Calories float64 `json:"calories" bson:"calories" example:"200"`
	// Protein in grams
	Protein float64 `json:"protein" bson:"protein" example:"10"`
	// Carbohydrates in grams
	Carbohydrates float64 `json:"carbohydrates" bson:"carbohydrates" example:"25"`
	// Fat in grams
	Fat float64 `json:"fat" bson:"fat" example:"7"`
}

// Add returns the sum of two nutrition values.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Calories:      n.Calories + other.Calories,
		Protein:       n.Protein + other.Protein,
		Carbohydrates: n.Carbohydrates + other.Carbohydrates,
		Fat:           n.Fat + other.Fat,
	}
}

// Scale returns the nutrition values multiplied by a serving-size multiplier.
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Calories:      n.Calories * factor,
		Protein:       n.Protein * factor,
		Carbohydrates: n.Carbohydrates * factor,
		Fat:           n.Fat * factor,
	}
}

// IsZero reports whether every macro value is zero.
func (n Nutrition) IsZero() bool {
	return n.Calories == 0 && n.Protein == 0 && n.Carbohydrates == 0 && n.Fat == 0
}

// FoodItem represents a food catalog entry with fixed per-serving macros.
//
// @Description Food catalog entry with per-serving nutrition values
type FoodItem struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Name is the human-readable food label.
	Name     string `bson:"name" json:"name" example:"Grilled chicken breast"`
	Category string `bson:"category,omitempty" json:"category,omitempty" example:"Poultry"`
	// ServingLabel describes one reference serving, e.g. "100 g" or "1 cup".
	ServingLabel string    `bson:"serving_label,omitempty" json:"serving_label,omitempty" example:"100 g"`
	PerServing   Nutrition `bson:"per_serving" json:"per_serving"`
	CreatedBy    string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// NutritionTargets holds a user's daily aggregate goals.
//
// @Description Daily macro and calorie targets
// @Example {"calories": 2000, "protein": 150, "carbohydrates": 250, "fat": 67}
type NutritionTargets struct {
	Calories      float64 `json:"calories" bson:"calories" example:"2000"`
	Protein       float64 `json:"protein" bson:"protein" example:"150"`
	Carbohydrates float64 `json:"carbohydrates" bson:"carbohydrates" example:"250"`
	Fat           float64 `json:"fat" bson:"fat" example:"67"`
}

// DefaultNutritionTargets is the fixed fallback used when no per-user
// targets are available.
var DefaultNutritionTargets = NutritionTargets{
	Calories:      2000,
	Protein:       150,
	Carbohydrates: 250,
	Fat:           67,
}

// IsZero reports whether every target is zero (i.e. targets are unset).
func (t NutritionTargets) IsZero() bool {
	return t.Calories == 0 && t.Protein == 0 && t.Carbohydrates == 0 && t.Fat == 0
}

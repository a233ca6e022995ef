package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMealTypes(t *testing.T) {
	assert.Equal(t, []string{MealBreakfast, MealLunch, MealDinner}, MealTypes)
	assert.Len(t, MealTypes, MealsPerDay)
}

func TestEmpty(t *testing.T) {
	result := Empty(MealsPerDay)

	assert.Equal(t, []float64{1.0, 1.0, 1.0}, result.ServingSizes)
	assert.Empty(t, result.Portions)
	assert.True(t, result.Totals.IsZero())
}

func TestOptimizationResult_JSON(t *testing.T) {
	result := OptimizationResult{
		ServingSizes: []float64{1.0, 1.25, 0.75},
		Portions: []MealPortion{
			{
				MealType:    MealBreakfast,
				FoodName:    "Oatmeal with berries",
				ServingSize: 1.0,
				Nutrition:   Nutrition{Calories: 310, Protein: 10, Carbohydrates: 54, Fat: 6},
			},
		},
		Totals:  Nutrition{Calories: 310, Protein: 10, Carbohydrates: 54, Fat: 6},
		Targets: DefaultNutritionTargets,
	}

	data, err := json.Marshal(result)
	assert.NoError(t, err)

	var decoded OptimizationResult
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}

func TestMealAssignment_Placeholder(t *testing.T) {
	placeholder := MealAssignment{MealType: MealLunch}

	assert.False(t, placeholder.Assigned)
	assert.True(t, placeholder.PerServing.IsZero())
	assert.Empty(t, placeholder.FoodID)
}

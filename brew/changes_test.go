package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseRecipe() RecipeValues {
	return RecipeValues{
		CoffeeWeight:         18,
		TotalWaterWeight:     300,
		GrindSize:            600,
		FirstPourTemperature: floatPtr(93),
	}
}

func TestHasChangesAllEqual(t *testing.T) {
	// No overrides at all: the log temperature defaults to 93, matching the
	// recipe's first pour.
	assert.False(t, HasChanges(baseRecipe(), TweakValues{}))
}

func TestHasChangesEqualOverrides(t *testing.T) {
	tweaks := TweakValues{
		CoffeeWeight:     floatPtr(18),
		TotalWaterWeight: floatPtr(300),
		GrindSize:        intPtr(600),
		Temperature:      floatPtr(93),
	}
	assert.False(t, HasChanges(baseRecipe(), tweaks))
}

func TestHasChangesSingleField(t *testing.T) {
	assert.True(t, HasChanges(baseRecipe(), TweakValues{TotalWaterWeight: floatPtr(310)}))
	assert.True(t, HasChanges(baseRecipe(), TweakValues{CoffeeWeight: floatPtr(20)}))
	assert.True(t, HasChanges(baseRecipe(), TweakValues{GrindSize: intPtr(700)}))
	assert.True(t, HasChanges(baseRecipe(), TweakValues{Temperature: floatPtr(96)}))
}

func TestHasChangesTemperatureDefaults(t *testing.T) {
	// Recipe without a first-pour temperature falls back to the default, so
	// a log at 93 is no change and a log at 90 is.
	recipe := baseRecipe()
	recipe.FirstPourTemperature = nil

	assert.False(t, HasChanges(recipe, TweakValues{Temperature: floatPtr(DefaultTemperature)}))
	assert.True(t, HasChanges(recipe, TweakValues{Temperature: floatPtr(90)}))
}

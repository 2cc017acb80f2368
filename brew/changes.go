package brew

// DefaultTemperature is assumed for the first pour when neither the recipe
// nor the log records one, so that "no temperature anywhere" never reads as
// a tweak.
const DefaultTemperature = 93.0

// RecipeValues are the live recipe fields a brew log can override.
type RecipeValues struct {
	CoffeeWeight         float64
	TotalWaterWeight     float64
	GrindSize            int
	FirstPourTemperature *float64
}

// TweakValues are a log's candidate overrides; nil means "no override".
type TweakValues struct {
	CoffeeWeight     *float64
	TotalWaterWeight *float64
	GrindSize        *int
	Temperature      *float64
}

// HasChanges reports whether a log's candidate values differ from the live
// recipe in any of the four compared fields. A missing override resolves to
// the recipe's own value, so only genuine differences flip the flag.
func HasChanges(recipe RecipeValues, tweaks TweakValues) bool {
	coffee := recipe.CoffeeWeight
	if tweaks.CoffeeWeight != nil {
		coffee = *tweaks.CoffeeWeight
	}
	if coffee != recipe.CoffeeWeight {
		return true
	}

	water := recipe.TotalWaterWeight
	if tweaks.TotalWaterWeight != nil {
		water = *tweaks.TotalWaterWeight
	}
	if water != recipe.TotalWaterWeight {
		return true
	}

	grind := recipe.GrindSize
	if tweaks.GrindSize != nil {
		grind = *tweaks.GrindSize
	}
	if grind != recipe.GrindSize {
		return true
	}

	recipeTemp := DefaultTemperature
	if recipe.FirstPourTemperature != nil {
		recipeTemp = *recipe.FirstPourTemperature
	}
	logTemp := DefaultTemperature
	if tweaks.Temperature != nil {
		logTemp = *tweaks.Temperature
	}
	return logTemp != recipeTemp
}

package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"brew-journal-backend/brew"
	"brew-journal-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Typed precondition outcomes. The UI layer used to swallow these as silent
// no-ops; surfacing them keeps the workflows testable.
var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrLogNotFound    = errors.New("brew log not found")
	ErrNotOwner       = errors.New("not the owner")
)

// DerivationService implements the fork / save-as-new / auto-fork-on-log
// workflows. Every multi-write sequence runs inside one store transaction so
// a failure mid-sequence never leaves a partial recipe behind.
type DerivationService struct {
	store Store
}

func NewDerivationService(store Store) *DerivationService {
	return &DerivationService{store: store}
}

// Fork copies a recipe, pours included, to a new owner. The copy is by
// value: edits to either recipe never show up on the other. The header and
// pour writes commit atomically.
func (s *DerivationService) Fork(recipeID, newOwnerID string) (*models.Recipe, error) {
	if newOwnerID == "" {
		return nil, ErrNotSignedIn
	}

	source, err := s.store.RecipeByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("load source recipe: %w", err)
	}
	if !source.IsPublic && source.UserID != newOwnerID {
		return nil, ErrRecipeNotFound
	}

	var forked *models.Recipe
	err = s.store.Transaction(func(tx Store) error {
		var txErr error
		forked, txErr = forkRecipe(tx, source, newOwnerID)
		return txErr
	})
	if err != nil {
		slog.Error("fork recipe failed", "recipe_id", recipeID, "error", err)
		return nil, err
	}
	return forked, nil
}

// forkRecipe performs the two-phase copy against an already-open
// transaction.
func forkRecipe(tx Store, source *models.Recipe, newOwnerID string) (*models.Recipe, error) {
	clone := *source
	clone.ID = uuid.NewString()
	clone.UserID = newOwnerID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	clone.Pours = nil

	if err := tx.CreateRecipe(&clone); err != nil {
		return nil, fmt.Errorf("create forked recipe: %w", err)
	}

	pours := copyPours(clone.ID, source.Pours)
	if err := tx.CreatePours(pours); err != nil {
		return nil, fmt.Errorf("create forked pours: %w", err)
	}
	clone.Pours = pours
	return &clone, nil
}

func copyPours(recipeID string, source []models.Pour) []models.Pour {
	pours := make([]models.Pour, len(source))
	for i, p := range source {
		pours[i] = p
		pours[i].ID = uuid.NewString()
		pours[i].RecipeID = recipeID
		pours[i].Position = i
		pours[i].CreatedAt = time.Time{}
	}
	return pours
}

// SaveLogAsRecipe derives a new private recipe from a brew log's tweaks and
// re-points a copy of the log at it. Scalar overrides win field by field; a
// tweak pour list replaces the source pours wholesale, never merged.
func (s *DerivationService) SaveLogAsRecipe(logID, userID, name string) (*models.Recipe, *models.BrewLog, error) {
	if userID == "" {
		return nil, nil, ErrNotSignedIn
	}

	source, err := s.store.BrewLogByID(logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrLogNotFound
		}
		return nil, nil, fmt.Errorf("load brew log: %w", err)
	}
	if source.UserID != userID {
		return nil, nil, ErrNotOwner
	}

	recipe, err := s.store.RecipeByID(source.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRecipeNotFound
		}
		return nil, nil, fmt.Errorf("load source recipe: %w", err)
	}

	derived := &models.Recipe{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             name,
		Method:           recipe.Method,
		CoffeeWeight:     recipe.CoffeeWeight,
		TotalWaterWeight: recipe.TotalWaterWeight,
		GrindSize:        recipe.GrindSize,
		WaterType:        recipe.WaterType,
		CoffeeID:         source.CoffeeID,
		IsPublic:         false,
		CreatedAt:        time.Now(),
	}
	derived.UpdatedAt = derived.CreatedAt
	if source.TweakCoffeeWeight != nil {
		derived.CoffeeWeight = *source.TweakCoffeeWeight
	}
	if source.TweakTotalWaterWeight != nil {
		derived.TotalWaterWeight = *source.TweakTotalWaterWeight
	}
	if source.TweakGrindSize != nil {
		derived.GrindSize = *source.TweakGrindSize
	}

	var pours []models.Pour
	if len(source.TweakPours) > 0 {
		pours = logPoursToPours(derived.ID, source.TweakPours)
	} else {
		pours = copyPours(derived.ID, recipe.Pours)
	}

	newLog := *source
	newLog.ID = uuid.NewString()
	newLog.RecipeID = derived.ID
	newLog.RecipeName = derived.Name
	newLog.CreatedAt = time.Time{}

	err = s.store.Transaction(func(tx Store) error {
		if err := tx.CreateRecipe(derived); err != nil {
			return fmt.Errorf("create derived recipe: %w", err)
		}
		if err := tx.CreatePours(pours); err != nil {
			return fmt.Errorf("create derived pours: %w", err)
		}
		if err := tx.CreateBrewLog(&newLog); err != nil {
			return fmt.Errorf("create re-pointed log: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("save log as recipe failed", "log_id", logID, "error", err)
		return nil, nil, err
	}

	derived.Pours = pours
	return derived, &newLog, nil
}

func logPoursToPours(recipeID string, source []models.LogPour) []models.Pour {
	pours := make([]models.Pour, len(source))
	for i, p := range source {
		pours[i] = models.Pour{
			ID:          uuid.NewString(),
			RecipeID:    recipeID,
			Position:    i,
			Time:        p.Time,
			WaterAmount: p.WaterAmount,
			Temperature: p.Temperature,
			TempUnit:    p.TempUnit,
			Notes:       p.Notes,
		}
	}
	return pours
}

// CreateLog attaches a brew log to a recipe, forking first when the actor is
// not the owner. A log is never attached to a recipe the actor does not own;
// fork-then-log runs in a single transaction. Returns the stored log and
// whether a fork happened.
func (s *DerivationService) CreateLog(recipeID, userID string, log *models.BrewLog) (*models.BrewLog, bool, error) {
	if userID == "" {
		return nil, false, ErrNotSignedIn
	}

	recipe, err := s.store.RecipeByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrRecipeNotFound
		}
		return nil, false, fmt.Errorf("load recipe: %w", err)
	}
	if !recipe.IsPublic && recipe.UserID != userID {
		return nil, false, ErrRecipeNotFound
	}

	log.ID = uuid.NewString()
	log.UserID = userID
	if log.BrewedAt.IsZero() {
		log.BrewedAt = time.Now()
	}
	if log.CoffeeID != nil {
		// Snapshot the coffee name; a later delete of the coffee must not
		// blank out the log.
		if coffee, err := s.store.CoffeeByID(*log.CoffeeID); err == nil {
			log.CoffeeName = &coffee.Name
		}
	}

	forked := false
	err = s.store.Transaction(func(tx Store) error {
		target := recipe
		if recipe.UserID != userID {
			fork, err := forkRecipe(tx, recipe, userID)
			if err != nil {
				return err
			}
			target = fork
			forked = true
		}
		log.RecipeID = target.ID
		log.RecipeName = target.Name
		log.Method = target.Method
		return tx.CreateBrewLog(log)
	})
	if err != nil {
		slog.Error("create brew log failed", "recipe_id", recipeID, "error", err)
		return nil, false, err
	}
	return log, forked, nil
}

// HasChanges reports whether the log's tweaks differ from the live recipe,
// which decides whether save-as-new is worth offering.
func (s *DerivationService) HasChanges(logID, userID string) (bool, error) {
	if userID == "" {
		return false, ErrNotSignedIn
	}

	log, err := s.store.BrewLogByID(logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrLogNotFound
		}
		return false, fmt.Errorf("load brew log: %w", err)
	}
	if log.UserID != userID {
		return false, ErrNotOwner
	}

	recipe, err := s.store.RecipeByID(log.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRecipeNotFound
		}
		return false, fmt.Errorf("load recipe: %w", err)
	}

	values := brew.RecipeValues{
		CoffeeWeight:     recipe.CoffeeWeight,
		TotalWaterWeight: recipe.TotalWaterWeight,
		GrindSize:        recipe.GrindSize,
	}
	if len(recipe.Pours) > 0 {
		values.FirstPourTemperature = recipe.Pours[0].Temperature
	}

	return brew.HasChanges(values, brew.TweakValues{
		CoffeeWeight:     log.TweakCoffeeWeight,
		TotalWaterWeight: log.TweakTotalWaterWeight,
		GrindSize:        log.TweakGrindSize,
		Temperature:      log.TweakTemperature,
	}), nil
}

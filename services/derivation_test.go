package services

import (
	"errors"
	"testing"

	"brew-journal-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errInjected = errors.New("injected failure")

// fakeStore keeps everything in maps and fails chosen writes on demand. Its
// Transaction works on a clone and commits by swapping state, so a failed
// transaction leaves the fake exactly as it was.
type fakeStore struct {
	recipes map[string]*models.Recipe
	logs    map[string]*models.BrewLog
	coffees map[string]*models.Coffee

	failCreatePours bool
	failCreateLog   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recipes: make(map[string]*models.Recipe),
		logs:    make(map[string]*models.BrewLog),
		coffees: make(map[string]*models.Coffee),
	}
}

func (f *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.failCreatePours = f.failCreatePours
	c.failCreateLog = f.failCreateLog
	for id, r := range f.recipes {
		dup := *r
		dup.Pours = append([]models.Pour(nil), r.Pours...)
		c.recipes[id] = &dup
	}
	for id, l := range f.logs {
		dup := *l
		c.logs[id] = &dup
	}
	for id, co := range f.coffees {
		dup := *co
		c.coffees[id] = &dup
	}
	return c
}

func (f *fakeStore) RecipeByID(id string) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *r
	dup.Pours = append([]models.Pour(nil), r.Pours...)
	return &dup, nil
}

func (f *fakeStore) CreateRecipe(recipe *models.Recipe) error {
	dup := *recipe
	dup.Pours = nil
	f.recipes[recipe.ID] = &dup
	return nil
}

func (f *fakeStore) CreatePours(pours []models.Pour) error {
	if f.failCreatePours {
		return errInjected
	}
	for _, p := range pours {
		r, ok := f.recipes[p.RecipeID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		r.Pours = append(r.Pours, p)
	}
	return nil
}

func (f *fakeStore) BrewLogByID(id string) (*models.BrewLog, error) {
	l, ok := f.logs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *l
	return &dup, nil
}

func (f *fakeStore) CreateBrewLog(log *models.BrewLog) error {
	if f.failCreateLog {
		return errInjected
	}
	dup := *log
	f.logs[log.ID] = &dup
	return nil
}

func (f *fakeStore) CoffeeByID(id string) (*models.Coffee, error) {
	c, ok := f.coffees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *c
	return &dup, nil
}

func (f *fakeStore) Transaction(fn func(Store) error) error {
	staged := f.clone()
	if err := fn(staged); err != nil {
		return err
	}
	f.recipes = staged.recipes
	f.logs = staged.logs
	f.coffees = staged.coffees
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func seedRecipe(store *fakeStore, owner string, public bool) *models.Recipe {
	recipe := &models.Recipe{
		ID:               uuid.NewString(),
		UserID:           owner,
		Name:             "Morning V60",
		Method:           "V60",
		CoffeeWeight:     18,
		TotalWaterWeight: 300,
		GrindSize:        600,
		IsPublic:         public,
	}
	store.recipes[recipe.ID] = recipe
	recipe.Pours = []models.Pour{
		{ID: uuid.NewString(), RecipeID: recipe.ID, Position: 0, Time: "00:00", WaterAmount: 50, Temperature: floatPtr(93), Notes: strPtr("bloom")},
		{ID: uuid.NewString(), RecipeID: recipe.ID, Position: 1, Time: "00:45", WaterAmount: 100},
		{ID: uuid.NewString(), RecipeID: recipe.ID, Position: 2, Time: "01:30", WaterAmount: 150},
	}
	return recipe
}

func TestForkCopiesByValue(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	svc := NewDerivationService(store)

	forked, err := svc.Fork(source.ID, "bob")
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, forked.ID)
	assert.Equal(t, "bob", forked.UserID)
	assert.Equal(t, source.Name, forked.Name)
	assert.Equal(t, source.CoffeeWeight, forked.CoffeeWeight)
	require.Len(t, forked.Pours, 3)
	for i, p := range forked.Pours {
		assert.NotEqual(t, source.Pours[i].ID, p.ID)
		assert.Equal(t, forked.ID, p.RecipeID)
		assert.Equal(t, source.Pours[i].WaterAmount, p.WaterAmount)
	}

	// The fork is committed, not just returned.
	stored, err := store.RecipeByID(forked.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Pours, 3)
}

func TestForkAtomicity(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	store.failCreatePours = true
	svc := NewDerivationService(store)

	forked, err := svc.Fork(source.ID, "bob")

	assert.ErrorIs(t, err, errInjected)
	assert.Nil(t, forked)
	// The header write must not survive the failed pours write.
	assert.Len(t, store.recipes, 1)
}

func TestForkPreconditions(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", false)
	svc := NewDerivationService(store)

	_, err := svc.Fork(source.ID, "")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = svc.Fork(uuid.NewString(), "bob")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	// A private recipe is invisible to non-owners.
	_, err = svc.Fork(source.ID, "bob")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestSaveLogAsRecipeOverridesWin(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	log := &models.BrewLog{
		ID:                uuid.NewString(),
		UserID:            "alice",
		RecipeID:          source.ID,
		RecipeName:        source.Name,
		Method:            source.Method,
		Rating:            4,
		TweakCoffeeWeight: floatPtr(20),
		TweakPours: []models.LogPour{
			{Time: "00:00", WaterAmount: 60, Notes: strPtr("bloom")},
		},
	}
	store.logs[log.ID] = log
	svc := NewDerivationService(store)

	derived, newLog, err := svc.SaveLogAsRecipe(log.ID, "alice", "Tweaked V60")
	require.NoError(t, err)

	assert.Equal(t, 20.0, derived.CoffeeWeight, "override wins")
	assert.Equal(t, 300.0, derived.TotalWaterWeight, "inherited, no override present")
	assert.Equal(t, 600, derived.GrindSize)
	assert.False(t, derived.IsPublic, "derived recipes are always private")
	assert.Equal(t, "Tweaked V60", derived.Name)
	require.Len(t, derived.Pours, 1, "tweak pour list replaces wholesale")
	assert.Equal(t, 60, derived.Pours[0].WaterAmount)

	assert.NotEqual(t, log.ID, newLog.ID)
	assert.Equal(t, derived.ID, newLog.RecipeID)
	assert.Equal(t, derived.Name, newLog.RecipeName)
	assert.Equal(t, log.Rating, newLog.Rating)

	// The original log still points at the original recipe.
	original, err := store.BrewLogByID(log.ID)
	require.NoError(t, err)
	assert.Equal(t, source.ID, original.RecipeID)
}

func TestSaveLogAsRecipeInheritsPours(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	log := &models.BrewLog{
		ID:       uuid.NewString(),
		UserID:   "alice",
		RecipeID: source.ID,
		Rating:   3,
	}
	store.logs[log.ID] = log
	svc := NewDerivationService(store)

	derived, _, err := svc.SaveLogAsRecipe(log.ID, "alice", "Copy")
	require.NoError(t, err)
	require.Len(t, derived.Pours, 3)
	assert.Equal(t, 50, derived.Pours[0].WaterAmount)
}

func TestSaveLogAsRecipeFailureSurfaces(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	log := &models.BrewLog{ID: uuid.NewString(), UserID: "alice", RecipeID: source.ID, Rating: 3}
	store.logs[log.ID] = log
	store.failCreateLog = true
	svc := NewDerivationService(store)

	derived, newLog, err := svc.SaveLogAsRecipe(log.ID, "alice", "Copy")

	assert.ErrorIs(t, err, errInjected)
	assert.Nil(t, derived)
	assert.Nil(t, newLog)
	assert.Len(t, store.recipes, 1, "derived recipe must not survive the failed log write")
	assert.Len(t, store.logs, 1)
}

func TestSaveLogAsRecipePreconditions(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	log := &models.BrewLog{ID: uuid.NewString(), UserID: "alice", RecipeID: source.ID, Rating: 3}
	store.logs[log.ID] = log
	svc := NewDerivationService(store)

	_, _, err := svc.SaveLogAsRecipe(log.ID, "", "Copy")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, _, err = svc.SaveLogAsRecipe(uuid.NewString(), "alice", "Copy")
	assert.ErrorIs(t, err, ErrLogNotFound)

	_, _, err = svc.SaveLogAsRecipe(log.ID, "bob", "Copy")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCreateLogOwnRecipe(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", false)
	svc := NewDerivationService(store)

	log, forked, err := svc.CreateLog(source.ID, "alice", &models.BrewLog{Rating: 5})
	require.NoError(t, err)

	assert.False(t, forked)
	assert.Equal(t, source.ID, log.RecipeID)
	assert.Equal(t, source.Name, log.RecipeName)
	assert.Equal(t, source.Method, log.Method)
	assert.False(t, log.BrewedAt.IsZero())
}

func TestCreateLogAutoForksForNonOwner(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	svc := NewDerivationService(store)

	log, forked, err := svc.CreateLog(source.ID, "bob", &models.BrewLog{Rating: 4})
	require.NoError(t, err)

	assert.True(t, forked)
	assert.NotEqual(t, source.ID, log.RecipeID, "log must attach to the fork, never the original")

	fork, err := store.RecipeByID(log.RecipeID)
	require.NoError(t, err)
	assert.Equal(t, "bob", fork.UserID)
	assert.Len(t, fork.Pours, 3)
}

func TestCreateLogForkFailureAbortsLog(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	store.failCreatePours = true
	svc := NewDerivationService(store)

	_, _, err := svc.CreateLog(source.ID, "bob", &models.BrewLog{Rating: 4})

	assert.ErrorIs(t, err, errInjected)
	assert.Len(t, store.recipes, 1)
	assert.Empty(t, store.logs)
}

func TestCreateLogSnapshotsCoffeeName(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", false)
	coffee := &models.Coffee{ID: uuid.NewString(), UserID: "alice", Name: "La Palma Gesha"}
	store.coffees[coffee.ID] = coffee
	svc := NewDerivationService(store)

	log, _, err := svc.CreateLog(source.ID, "alice", &models.BrewLog{Rating: 4, CoffeeID: &coffee.ID})
	require.NoError(t, err)

	require.NotNil(t, log.CoffeeName)
	assert.Equal(t, "La Palma Gesha", *log.CoffeeName)
}

func TestCreateLogPrivateRecipeHidden(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", false)
	svc := NewDerivationService(store)

	_, _, err := svc.CreateLog(source.ID, "bob", &models.BrewLog{Rating: 4})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestHasChanges(t *testing.T) {
	store := newFakeStore()
	source := seedRecipe(store, "alice", true)
	svc := NewDerivationService(store)

	unchanged := &models.BrewLog{ID: uuid.NewString(), UserID: "alice", RecipeID: source.ID, Rating: 3}
	store.logs[unchanged.ID] = unchanged

	tweaked := &models.BrewLog{
		ID:                    uuid.NewString(),
		UserID:                "alice",
		RecipeID:              source.ID,
		Rating:                3,
		TweakTotalWaterWeight: floatPtr(310),
	}
	store.logs[tweaked.ID] = tweaked

	got, err := svc.HasChanges(unchanged.ID, "alice")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = svc.HasChanges(tweaked.ID, "alice")
	require.NoError(t, err)
	assert.True(t, got)
}

package services

import (
	"brew-journal-backend/models"

	"gorm.io/gorm"
)

// Store is the persistence surface the derivation workflows need. The gorm
// implementation below is used in production; tests substitute an in-memory
// fake with failure injection.
type Store interface {
	RecipeByID(id string) (*models.Recipe, error)
	CreateRecipe(recipe *models.Recipe) error
	CreatePours(pours []models.Pour) error
	BrewLogByID(id string) (*models.BrewLog, error)
	CreateBrewLog(log *models.BrewLog) error
	CoffeeByID(id string) (*models.Coffee, error)
	// Transaction runs fn against a transactional view of the store. All
	// writes inside fn commit together or not at all.
	Transaction(fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm connection in the Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) RecipeByID(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Pours", func(db *gorm.DB) *gorm.DB {
		return db.Order("pours.position ASC")
	}).First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *gormStore) CreateRecipe(recipe *models.Recipe) error {
	// Pours are written separately so the two-phase fork contract stays
	// explicit; the association would otherwise be created implicitly.
	return s.db.Omit("Pours").Create(recipe).Error
}

func (s *gormStore) CreatePours(pours []models.Pour) error {
	if len(pours) == 0 {
		return nil
	}
	return s.db.Create(&pours).Error
}

func (s *gormStore) BrewLogByID(id string) (*models.BrewLog, error) {
	var log models.BrewLog
	if err := s.db.First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *gormStore) CreateBrewLog(log *models.BrewLog) error {
	return s.db.Create(log).Error
}

func (s *gormStore) CoffeeByID(id string) (*models.Coffee, error) {
	var coffee models.Coffee
	if err := s.db.First(&coffee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coffee, nil
}

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

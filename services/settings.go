package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"brew-journal-backend/models"

	"gorm.io/gorm"
)

// SettingsStore is the persistence surface for per-user settings.
type SettingsStore interface {
	Settings(userID string) (*models.UserSettings, error)
	SaveSettings(settings *models.UserSettings) error
}

// SettingsCache is a lookaside cache for settings. Implementations must be
// best-effort: a cache error behaves like a miss.
type SettingsCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

type gormSettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) SettingsStore {
	return &gormSettingsStore{db: db}
}

func (s *gormSettingsStore) Settings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := s.db.First(&settings, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *gormSettingsStore) SaveSettings(settings *models.UserSettings) error {
	return s.db.Save(settings).Error
}

// SettingsService loads settings on demand and keeps a cache in front of the
// store. There is no ambient settings singleton; callers always go through
// Get.
type SettingsService struct {
	store SettingsStore
	cache SettingsCache
}

func NewSettingsService(store SettingsStore, cache SettingsCache) *SettingsService {
	return &SettingsService{store: store, cache: cache}
}

func settingsKey(userID string) string {
	return fmt.Sprintf("user:%s:settings", userID)
}

func defaultSettings(userID string) *models.UserSettings {
	return &models.UserSettings{
		UserID:          userID,
		TemperatureUnit: "C",
		Locale:          "en",
	}
}

// Get returns the user's settings, from cache when possible. A user with no
// stored settings gets the defaults without an error.
func (s *SettingsService) Get(userID string) (*models.UserSettings, error) {
	if raw, ok := s.cache.Get(settingsKey(userID)); ok {
		var settings models.UserSettings
		if err := json.Unmarshal([]byte(raw), &settings); err == nil {
			return &settings, nil
		}
		s.cache.Delete(settingsKey(userID))
	}

	settings, err := s.store.Settings(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultSettings(userID), nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s.cacheSettings(settings)
	return settings, nil
}

// Update applies the new settings optimistically to the cache, then writes
// to the store. When the write fails the cache is reconciled from the store
// so the optimistic value does not outlive the failure.
func (s *SettingsService) Update(userID string, settings *models.UserSettings) (*models.UserSettings, error) {
	settings.UserID = userID
	settings.UpdatedAt = time.Now()

	s.cacheSettings(settings)

	if err := s.store.SaveSettings(settings); err != nil {
		s.reconcile(userID)
		slog.Error("save settings failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// reconcile overwrites the cached value with whatever the store holds,
// discarding the optimistic write.
func (s *SettingsService) reconcile(userID string) {
	stored, err := s.store.Settings(userID)
	if err != nil {
		s.cache.Delete(settingsKey(userID))
		return
	}
	s.cacheSettings(stored)
}

func (s *SettingsService) cacheSettings(settings *models.UserSettings) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	s.cache.Set(settingsKey(settings.UserID), string(raw))
}

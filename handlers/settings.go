package handlers

import (
	"net/http"

	"brew-journal-backend/brew"
	"brew-journal-backend/models"
	"brew-journal-backend/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: service}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := c.GetString("user_id")

	settings, err := h.Service.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Grinder         string `json:"grinder"`
		TemperatureUnit string `json:"temperature_unit" binding:"required,oneof=C F"`
		Locale          string `json:"locale" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Grinder != "" && brew.GrinderName(input.Grinder) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown grinder"})
		return
	}

	settings, err := h.Service.Update(userID, &models.UserSettings{
		Grinder:         input.Grinder,
		TemperatureUnit: input.TemperatureUnit,
		Locale:          input.Locale,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

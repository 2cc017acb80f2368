package handlers

import (
	"net/http"
	"strconv"
	"time"

	"brew-journal-backend/models"
	"brew-journal-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxLogImages caps the number of photos attached to a single brew log.
const maxLogImages = 3

type BrewLogHandler struct {
	DB         *gorm.DB
	Derivation *services.DerivationService
}

func NewBrewLogHandler(db *gorm.DB, derivation *services.DerivationService) *BrewLogHandler {
	return &BrewLogHandler{DB: db, Derivation: derivation}
}

type brewLogInput struct {
	BrewedAt   *time.Time `json:"brewed_at"`
	CoffeeID   *string    `json:"coffee_id"`
	Acidity    int        `json:"acidity" binding:"min=0,max=100"`
	Sweetness  int        `json:"sweetness" binding:"min=0,max=100"`
	Body       int        `json:"body" binding:"min=0,max=100"`
	Bitterness int        `json:"bitterness" binding:"min=0,max=100"`
	Rating     int        `json:"rating" binding:"required,min=1,max=5"`
	Notes      *string    `json:"notes"`
	Images     []string   `json:"images"`

	TweakCoffeeWeight     *float64         `json:"tweak_coffee_weight" binding:"omitempty,gt=0"`
	TweakTotalWaterWeight *float64         `json:"tweak_total_water_weight" binding:"omitempty,gt=0"`
	TweakGrindSize        *int             `json:"tweak_grind_size" binding:"omitempty,min=0,max=1400"`
	TweakTemperature      *float64         `json:"tweak_temperature"`
	TweakPours            []models.LogPour `json:"tweak_pours"`
}

func (h *BrewLogHandler) CreateBrewLog(c *gin.Context) {
	userID := c.GetString("user_id")
	recipeID := c.Param("id")

	var input brewLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Images) > maxLogImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many images"})
		return
	}

	log := models.BrewLog{
		CoffeeID:              input.CoffeeID,
		Acidity:               input.Acidity,
		Sweetness:             input.Sweetness,
		Body:                  input.Body,
		Bitterness:            input.Bitterness,
		Rating:                input.Rating,
		Notes:                 input.Notes,
		Images:                input.Images,
		TweakCoffeeWeight:     input.TweakCoffeeWeight,
		TweakTotalWaterWeight: input.TweakTotalWaterWeight,
		TweakGrindSize:        input.TweakGrindSize,
		TweakTemperature:      input.TweakTemperature,
		TweakPours:            input.TweakPours,
	}
	if input.BrewedAt != nil {
		log.BrewedAt = *input.BrewedAt
	}

	created, forked, err := h.Derivation.CreateLog(recipeID, userID, &log)
	if err != nil {
		status, message := derivationStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": created, "forked": forked})
}

func (h *BrewLogHandler) GetBrewLogs(c *gin.Context) {
	userID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&models.BrewLog{}).Where("user_id = ?", userID)
	if recipeID := c.Query("recipe_id"); recipeID != "" {
		query = query.Where("recipe_id = ?", recipeID)
	}

	var logs []models.BrewLog
	var total int64

	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).
		Order("brewed_at DESC").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brew logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": (int(total) + limit - 1) / limit,
	})
}

func (h *BrewLogHandler) GetBrewLog(c *gin.Context) {
	userID := c.GetString("user_id")
	logID := c.Param("id")

	var log models.BrewLog
	if err := h.DB.First(&log, "id = ? AND user_id = ?", logID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brew log not found"})
		return
	}

	c.JSON(http.StatusOK, log)
}

func (h *BrewLogHandler) DeleteBrewLog(c *gin.Context) {
	userID := c.GetString("user_id")
	logID := c.Param("id")

	var log models.BrewLog
	if err := h.DB.First(&log, "id = ? AND user_id = ?", logID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brew log not found"})
		return
	}

	if err := h.DB.Delete(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brew log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brew log deleted successfully"})
}

func (h *BrewLogHandler) HasChanges(c *gin.Context) {
	userID := c.GetString("user_id")
	logID := c.Param("id")

	hasChanges, err := h.Derivation.HasChanges(logID, userID)
	if err != nil {
		status, message := derivationStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_changes": hasChanges})
}

func (h *BrewLogHandler) SaveAsRecipe(c *gin.Context) {
	userID := c.GetString("user_id")
	logID := c.Param("id")

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, log, err := h.Derivation.SaveLogAsRecipe(logID, userID, input.Name)
	if err != nil {
		status, message := derivationStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	response := recipeResponse(recipe)
	response["log"] = log
	c.JSON(http.StatusCreated, response)
}

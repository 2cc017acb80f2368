package handlers

import (
	"net/http"

	"brew-journal-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CoffeeHandler struct {
	DB *gorm.DB
}

func NewCoffeeHandler(db *gorm.DB) *CoffeeHandler {
	return &CoffeeHandler{DB: db}
}

type coffeeInput struct {
	Name        string   `json:"name" binding:"required"`
	Roaster     string   `json:"roaster"`
	RoastLevel  string   `json:"roast_level" binding:"required,oneof=light medium-light medium medium-dark dark"`
	Origin      *string  `json:"origin"`
	Farm        *string  `json:"farm"`
	Altitude    *int     `json:"altitude" binding:"omitempty,min=0"`
	Process     *string  `json:"process"`
	Variety     *string  `json:"variety"`
	FlavorNotes []string `json:"flavor_notes"`
	Notes       *string  `json:"notes"`
	ImageURL    *string  `json:"image_url"`
}

func (h *CoffeeHandler) CreateCoffee(c *gin.Context) {
	userID := c.GetString("user_id")

	var input coffeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coffee := models.Coffee{
		UserID:      userID,
		Name:        input.Name,
		Roaster:     input.Roaster,
		RoastLevel:  input.RoastLevel,
		Origin:      input.Origin,
		Farm:        input.Farm,
		Altitude:    input.Altitude,
		Process:     input.Process,
		Variety:     input.Variety,
		FlavorNotes: input.FlavorNotes,
		Notes:       input.Notes,
		ImageURL:    input.ImageURL,
	}

	if err := h.DB.Create(&coffee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coffee"})
		return
	}

	c.JSON(http.StatusCreated, coffee)
}

func (h *CoffeeHandler) GetCoffees(c *gin.Context) {
	userID := c.GetString("user_id")

	query := h.DB.Where("user_id = ?", userID)
	if c.Query("archived") != "true" {
		query = query.Where("archived = ?", false)
	}

	var coffees []models.Coffee
	if err := query.Order("created_at DESC").Find(&coffees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coffees"})
		return
	}

	c.JSON(http.StatusOK, coffees)
}

func (h *CoffeeHandler) GetCoffee(c *gin.Context) {
	userID := c.GetString("user_id")

	var coffee models.Coffee
	if err := h.DB.First(&coffee, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coffee not found"})
		return
	}

	c.JSON(http.StatusOK, coffee)
}

func (h *CoffeeHandler) UpdateCoffee(c *gin.Context) {
	userID := c.GetString("user_id")

	var coffee models.Coffee
	if err := h.DB.First(&coffee, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coffee not found"})
		return
	}

	var input coffeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coffee.Name = input.Name
	coffee.Roaster = input.Roaster
	coffee.RoastLevel = input.RoastLevel
	coffee.Origin = input.Origin
	coffee.Farm = input.Farm
	coffee.Altitude = input.Altitude
	coffee.Process = input.Process
	coffee.Variety = input.Variety
	coffee.FlavorNotes = input.FlavorNotes
	coffee.Notes = input.Notes
	coffee.ImageURL = input.ImageURL

	if err := h.DB.Save(&coffee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coffee"})
		return
	}

	c.JSON(http.StatusOK, coffee)
}

// DeleteCoffee removes the coffee only. Recipes and brew logs keep their
// weak reference plus the snapshot name, so nothing cascades.
func (h *CoffeeHandler) DeleteCoffee(c *gin.Context) {
	userID := c.GetString("user_id")

	var coffee models.Coffee
	if err := h.DB.First(&coffee, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coffee not found"})
		return
	}

	if err := h.DB.Delete(&coffee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coffee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coffee deleted successfully"})
}

func (h *CoffeeHandler) ToggleArchive(c *gin.Context) {
	userID := c.GetString("user_id")

	var coffee models.Coffee
	if err := h.DB.First(&coffee, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coffee not found"})
		return
	}

	coffee.Archived = !coffee.Archived
	if err := h.DB.Save(&coffee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coffee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived": coffee.Archived})
}

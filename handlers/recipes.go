package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"brew-journal-backend/brew"
	"brew-journal-backend/models"
	"brew-journal-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecipeHandler struct {
	DB         *gorm.DB
	Derivation *services.DerivationService
}

func NewRecipeHandler(db *gorm.DB, derivation *services.DerivationService) *RecipeHandler {
	return &RecipeHandler{DB: db, Derivation: derivation}
}

type recipeInput struct {
	Name             string             `json:"name" binding:"required"`
	Method           string             `json:"method" binding:"required"`
	CoffeeWeight     float64            `json:"coffee_weight" binding:"required,gt=0"`
	TotalWaterWeight float64            `json:"total_water_weight" binding:"required,gt=0"`
	GrindSize        int                `json:"grind_size" binding:"min=0,max=1400"`
	WaterType        *string            `json:"water_type"`
	CoffeeID         *string            `json:"coffee_id"`
	IsPublic         bool               `json:"is_public"`
	Pours            []models.PourInput `json:"pours"`
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input recipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.Recipe{
		UserID:           userID.(string),
		Name:             input.Name,
		Method:           input.Method,
		CoffeeWeight:     input.CoffeeWeight,
		TotalWaterWeight: input.TotalWaterWeight,
		GrindSize:        input.GrindSize,
		WaterType:        input.WaterType,
		CoffeeID:         input.CoffeeID,
		IsPublic:         input.IsPublic,
	}

	tx := h.DB.Begin()

	if err := tx.Omit("Pours").Create(&recipe).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	pours := poursFromInput(recipe.ID, input.Pours)
	if len(pours) > 0 {
		if err := tx.Create(&pours).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pours"})
			return
		}
	}

	tx.Commit()

	recipe.Pours = pours
	c.JSON(http.StatusCreated, recipeResponse(&recipe))
}

func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 12
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&models.Recipe{})

	userID, authed := c.Get("user_id")
	if authed {
		if c.Query("mine") == "true" {
			query = query.Where("user_id = ?", userID)
		} else {
			query = query.Where("is_public = ? OR user_id = ?", true, userID)
		}
	} else {
		query = query.Where("is_public = ?", true)
	}

	if method := c.Query("method"); method != "" {
		query = query.Where("method ILIKE ?", method)
	}

	var recipes []models.Recipe
	var total int64

	query.Count(&total)

	if err := query.Preload("Pours", func(db *gorm.DB) *gorm.DB {
		return db.Order("pours.position ASC")
	}).Offset(offset).Limit(limit).
		Order("created_at DESC").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	items := make([]gin.H, len(recipes))
	for i := range recipes {
		items[i] = recipeResponse(&recipes[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": items,
		"total":   total,
		"page":    page,
		"limit":   limit,
		"pages":   (int(total) + limit - 1) / limit,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	// The path segment is a method slug ("v60-<id>") or a bare id; either
	// way the trailing id is what we look up.
	recipeID := brew.DecodeSlug(c.Param("id"))

	var recipe models.Recipe
	if err := h.DB.Preload("Pours", func(db *gorm.DB) *gorm.DB {
		return db.Order("pours.position ASC")
	}).First(&recipe, "id = ?", recipeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	userID, _ := c.Get("user_id")
	if !recipe.IsPublic && recipe.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	response := recipeResponse(&recipe)
	response["timeline"] = brew.BuildTimeline(toBrewPours(recipe.Pours), int(recipe.TotalWaterWeight))
	response["is_owner"] = recipe.UserID == userID

	// Weak coffee reference: a deleted coffee degrades to no coffee, not an
	// error.
	if recipe.CoffeeID != nil {
		var coffee models.Coffee
		if err := h.DB.First(&coffee, "id = ?", *recipe.CoffeeID).Error; err == nil {
			response["coffee"] = coffee
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID := c.Param("id")

	var recipe models.Recipe
	if err := h.DB.First(&recipe, "id = ? AND user_id = ?", recipeID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found or access denied"})
		return
	}

	var input recipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe.Name = input.Name
	recipe.Method = input.Method
	recipe.CoffeeWeight = input.CoffeeWeight
	recipe.TotalWaterWeight = input.TotalWaterWeight
	recipe.GrindSize = input.GrindSize
	recipe.WaterType = input.WaterType
	recipe.CoffeeID = input.CoffeeID
	recipe.IsPublic = input.IsPublic

	// Edits replace the whole pour list; there is no partial patch.
	tx := h.DB.Begin()

	if err := tx.Omit("Pours").Save(&recipe).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Pour{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pours"})
		return
	}

	pours := poursFromInput(recipe.ID, input.Pours)
	if len(pours) > 0 {
		if err := tx.Create(&pours).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pours"})
			return
		}
	}

	tx.Commit()

	recipe.Pours = pours
	c.JSON(http.StatusOK, recipeResponse(&recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID := c.Param("id")

	var recipe models.Recipe
	if err := h.DB.First(&recipe, "id = ? AND user_id = ?", recipeID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found or access denied"})
		return
	}

	tx := h.DB.Begin()

	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Pour{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	if err := tx.Delete(&recipe).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) ForkRecipe(c *gin.Context) {
	userID := c.GetString("user_id")
	recipeID := c.Param("id")

	forked, err := h.Derivation.Fork(recipeID, userID)
	if err != nil {
		status, message := derivationStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, recipeResponse(forked))
}

// recipeResponse attaches the derived display fields every consumer of a
// recipe needs: ratio, grind label, total time, slug.
func recipeResponse(recipe *models.Recipe) gin.H {
	pours := toBrewPours(recipe.Pours)
	return gin.H{
		"recipe":      recipe,
		"ratio":       brew.RatioLabel(recipe.CoffeeWeight, recipe.TotalWaterWeight),
		"grind_label": brew.GrindLabel(recipe.GrindSize),
		"total_time":  brew.TotalTime(pours),
		"slug":        brew.EncodeSlug(recipe.Method, recipe.ID),
	}
}

func toBrewPours(pours []models.Pour) []brew.Pour {
	out := make([]brew.Pour, len(pours))
	for i, p := range pours {
		out[i] = brew.Pour{
			Time:        p.Time,
			WaterAmount: p.WaterAmount,
			Temperature: p.Temperature,
		}
		if p.Notes != nil {
			out[i].Notes = *p.Notes
		}
	}
	return out
}

func poursFromInput(recipeID string, inputs []models.PourInput) []models.Pour {
	pours := make([]models.Pour, len(inputs))
	for i, in := range inputs {
		pours[i] = models.Pour{
			RecipeID:    recipeID,
			Position:    i,
			Time:        in.Time,
			WaterAmount: in.WaterAmount,
			Temperature: in.Temperature,
			TempUnit:    in.TempUnit,
			Notes:       in.Notes,
		}
	}
	return pours
}

// derivationStatus maps the derivation service's typed outcomes onto HTTP
// statuses. The raw cause stays in the logs, not the response.
func derivationStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		return http.StatusUnauthorized, "User not authenticated"
	case errors.Is(err, services.ErrRecipeNotFound):
		return http.StatusNotFound, "Recipe not found"
	case errors.Is(err, services.ErrLogNotFound):
		return http.StatusNotFound, "Brew log not found"
	case errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden, "Access denied"
	default:
		return http.StatusInternalServerError, "Something went wrong, please try again"
	}
}

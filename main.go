package main

import (
	"log/slog"

	"brew-journal-backend/config"
	"brew-journal-backend/handlers"
	"brew-journal-backend/logger"
	"brew-journal-backend/middleware"
	"brew-journal-backend/models"
	"brew-journal-backend/services"
	"brew-journal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	utils.InitJWT(cfg.JWTSecret)

	// Initialize database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return
	}

	// Auto migrate tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Pour{},
		&models.Coffee{},
		&models.BrewLog{},
		&models.UserSettings{},
	); err != nil {
		log.Error("Failed to migrate database", "error", err)
		return
	}

	// Settings cache: redis when available, in-process otherwise.
	var cache services.SettingsCache
	if redisCache, err := services.NewRedisCache(cfg.RedisAddr); err != nil {
		log.Warn("Redis not reachable, falling back to in-memory settings cache", "error", err)
		cache = services.NewMemoryCache()
	} else {
		cache = redisCache
	}

	// Initialize services
	derivationService := services.NewDerivationService(services.NewStore(db))
	settingsService := services.NewSettingsService(services.NewSettingsStore(db), cache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db)
	recipeHandler := handlers.NewRecipeHandler(db, derivationService)
	coffeeHandler := handlers.NewCoffeeHandler(db)
	brewLogHandler := handlers.NewBrewLogHandler(db, derivationService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	grinderHandler := handlers.NewGrinderHandler()
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Serve uploaded files
	router.Static("/uploads", cfg.UploadDir)

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/auth/signup", authHandler.Signup)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/grinders", grinderHandler.GetGrinders)
		public.GET("/recipes", middleware.OptionalAuthMiddleware(), recipeHandler.GetRecipes)
		public.GET("/recipes/:id", middleware.OptionalAuthMiddleware(), recipeHandler.GetRecipe)
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		// User routes
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)

		// Recipe routes
		protected.POST("/recipes", recipeHandler.CreateRecipe)
		protected.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
		protected.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)
		protected.POST("/recipes/:id/fork", recipeHandler.ForkRecipe)
		protected.POST("/recipes/:id/logs", brewLogHandler.CreateBrewLog)

		// Coffee routes
		protected.POST("/coffees", coffeeHandler.CreateCoffee)
		protected.GET("/coffees", coffeeHandler.GetCoffees)
		protected.GET("/coffees/:id", coffeeHandler.GetCoffee)
		protected.PUT("/coffees/:id", coffeeHandler.UpdateCoffee)
		protected.DELETE("/coffees/:id", coffeeHandler.DeleteCoffee)
		protected.POST("/coffees/:id/archive", coffeeHandler.ToggleArchive)

		// Brew log routes
		protected.GET("/logs", brewLogHandler.GetBrewLogs)
		protected.GET("/logs/:id", brewLogHandler.GetBrewLog)
		protected.DELETE("/logs/:id", brewLogHandler.DeleteBrewLog)
		protected.GET("/logs/:id/has-changes", brewLogHandler.HasChanges)
		protected.POST("/logs/:id/save-as-recipe", brewLogHandler.SaveAsRecipe)

		// Upload route
		protected.POST("/upload", uploadHandler.UploadImage)
	}

	// Start server
	log.Info("Server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server stopped", "error", err)
	}
}

package main

import (
	"log"
	"net/http"

	"staffdir-backend/directory-service/handlers"
	"staffdir-backend/directory-service/middleware"
	"staffdir-backend/shared/clients"
	"staffdir-backend/shared/config"
	"staffdir-backend/shared/database"
	"staffdir-backend/shared/utils/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Geocoder, optionally fronted by the Redis cache
	var geocoder clients.Geocoder = clients.NewGeocodeClient()
	if cfg.GeocodeCacheEnabled {
		cached, err := cache.NewGeocodeCache(geocoder)
		if err != nil {
			log.Printf("Warning: geocode cache disabled: %v", err)
		} else {
			defer cached.Close()
			geocoder = cached
		}
	}

	router := gin.Default()

	// CORS for the configured frontend origin
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSAllowOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	router.Use(middleware.RequestID())

	companyHandler := handlers.NewCompanyHandler(database.GetDB(), geocoder)
	userHandler := handlers.NewUserHandler(database.GetDB())
	handlers.RegisterRoutes(router, companyHandler, userHandler)

	// Health check
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "directory",
		})
	})

	log.Printf("Directory Service starting on port %s...", cfg.ServerPort)
	router.Run(":" + cfg.ServerPort)
}

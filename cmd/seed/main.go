package main

import (
	"log"

	"staffdir-backend/shared/clients"
	"staffdir-backend/shared/config"
	"staffdir-backend/shared/database"
)

func main() {
	log.Println("🌱 Starting database seeding...")

	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Run seeding; sample addresses are geocoded live
	if err := database.SeedDatabase(clients.NewGeocodeClient()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("✅ Database seeding completed successfully!")
}

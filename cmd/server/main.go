package main

import (
	"log"

	"github.com/famscout/activities-backend-go/internal/api"
	"github.com/famscout/activities-backend-go/internal/config"
	"github.com/famscout/activities-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	router := api.SetupRouter(cfg, db)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

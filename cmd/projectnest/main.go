package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pizza6inch/ProjectNest/db"
	"github.com/pizza6inch/ProjectNest/internal/auth"
	"github.com/pizza6inch/ProjectNest/internal/config"
	"github.com/pizza6inch/ProjectNest/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.JWTExpiration)

	r := router.NewRouter(tokens)

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"

	"food_ordering/internal/config"
	"food_ordering/internal/database"
	"food_ordering/internal/logger"
	"food_ordering/internal/migrations"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables before migrating")
	flag.Parse()

	fmt.Println("Initializing database...")

	cfg := config.Load()
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := migrations.RunMigrations(db, cfg, *reset, logger.NewLogger("init-db")); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if cfg.AdminEmail != "" {
		fmt.Printf("Admin account: %s\n", cfg.AdminEmail)
	}
	fmt.Println("Database initialization completed successfully!")
}

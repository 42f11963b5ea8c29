package main

import (
	"fmt"
	"log"
	"os"

	"social_cases_go/config"
	"social_cases_go/db"
	"social_cases_go/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: migrate <up|down>")
		os.Exit(1)
	}
	direction := os.Args[1]

	cfg := config.Load()
	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	dsn := cfg.DBPath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}
	if err := db.Initialize(cfg.DBDriver, dsn, cfg.Environment); err != nil {
		logger.Log.Fatalw("Failed to initialize database", "error", err)
	}
	defer db.Close()

	var err error
	switch direction {
	case "up":
		err = db.Migrate()
	case "down":
		err = db.Rollback()
	default:
		fmt.Printf("Unknown direction %q, expected up or down\n", direction)
		os.Exit(1)
	}
	if err != nil {
		logger.Log.Fatalw("Migration failed", "direction", direction, "error", err)
	}

	logger.Log.Infow("Migration finished", "direction", direction, "driver", cfg.DBDriver)
}

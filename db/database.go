package db

import (
	"fmt"

	"social_cases_go/logger"
	"social_cases_go/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the database for the configured driver.
// sqlite uses WAL mode; postgres expects a full DSN in dsn.
func Initialize(driver, dsn, environment string) error {
	var err error

	logLevel := gormlogger.Info
	if environment == "production" {
		logLevel = gormlogger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	switch driver {
	case "postgres":
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		DB, err = gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite", "":
		DB, err = gorm.Open(sqlite.Open(dsn+"?_journal_mode=WAL"), gormCfg)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Log.Infow("Database connection established", "driver", driver)
	return nil
}

// Migrate runs the forward migrations
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := models.Migrate(DB); err != nil {
		return err
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// Rollback reverts the migrations by dropping every table
func Rollback() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := models.Rollback(DB); err != nil {
		return err
	}

	logger.Log.Info("Database tables dropped")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}

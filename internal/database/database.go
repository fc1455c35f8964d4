package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Conceptual-Machines/songsmith-api/internal/models"
)

// Connect opens the history database. An empty URL disables history and
// returns a nil handle.
func Connect(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		log.Println("⚠️  DATABASE_URL not set, composition history disabled")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	log.Println("✅ Connected to history database")
	return db, nil
}

// Migrate creates or updates the history tables.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&models.CompositionRecord{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	"hadron_scholar_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres connection and migrates the schema. The handle is
// returned rather than stored in a package global so services receive it as
// an explicit dependency.
func Init(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the users, papers, keywords and favorites
// tables. Exported so tests can run the same migration against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Paper{}, &models.Keyword{}, &models.Favorite{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

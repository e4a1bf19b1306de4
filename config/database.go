package config

import (
	"os"

	"github.com/studybuddyhq/studybuddy-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Database *gorm.DB

func Connect() error {
	var err error
	dbURL := os.Getenv("DB_URL")
	if dbURL != "" {
		Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	} else {
		// Local development falls back to an on-disk sqlite file
		Database, err = gorm.Open(sqlite.Open("studybuddy.db"), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}

	err = Migrate(Database)
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}

// Migrate runs the schema migration for every model. Split out from
// Connect so tests can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Summarization{},
		&models.MindMapNodeLayout{},
		&models.QuizScore{},
	)
}

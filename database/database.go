package database

import (
	"fmt"
	"log"
	"os"

	"redacao-app/internal/domain/activities"
	"redacao-app/internal/domain/catalog"
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/credits"
	"redacao-app/internal/domain/essays"
	"redacao-app/internal/domain/exams"
	"redacao-app/internal/domain/inbox"
	"redacao-app/internal/domain/library"
	"redacao-app/internal/domain/media"
	"redacao-app/internal/domain/plans"
	"redacao-app/internal/domain/subscriptions"
	"redacao-app/internal/domain/themes"
	"redacao-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	// UUID helpers for ad-hoc SQL and future defaults
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Split out so tests can
// run it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&cohorts.Cohort{},
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&subscriptions.Subscription{},
		&subscriptions.Change{},
		&credits.Entry{},

		// media
		&media.File{},

		// content
		&themes.Theme{},
		&essays.Essay{},
		&library.Category{},
		&library.Material{},
		&catalog.Video{},
		&catalog.Lesson{},
		&catalog.WatchedFlag{},
		&exams.Exam{},
		&activities.Exercise{},
		&activities.BoardSession{},

		// messaging
		&inbox.Message{},
		&inbox.Recipient{},
	)
}

package database

import (
	"log"

	"github.com/Eursukkul/sports-club-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Patron{}, &models.Setting{}, &models.Booking{}, &models.Subscription{}); err != nil {
		return err
	}

	// Current-subscription lookups filter by patron and order by recency.
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_subscriptions_patron_recent
		ON subscriptions (patron_id, created_at DESC, id DESC)
	`).Error
}

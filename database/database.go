package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/webwatchtech/telegram-attendance-bot/config"
	"github.com/webwatchtech/telegram-attendance-bot/models"
)

var DB *gorm.DB

const (
	connectRetries = 5
	connectDelay   = 10 * time.Second
)

// Connect opens the database and migrates the schema. Connectivity failures
// are retried a bounded number of times, then fatal.
func Connect(cfg *config.Config) {
	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= connectRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("database: connect attempt %d/%d failed: %v", attempt, connectRetries, err)
		if attempt < connectRetries {
			time.Sleep(connectDelay)
		}
	}
	if err != nil {
		log.Fatalf("database: giving up after %d attempts: %v", connectRetries, err)
	}
	DB = db

	Migrate(DB)
}

// Migrate is separate from Connect so tests can run it against their own DB.
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.Attendance{},
		&models.Holiday{},
	); err != nil {
		log.Fatalf("database: auto migrate failed: %v", err)
	}
}

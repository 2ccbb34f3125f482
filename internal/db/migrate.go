package db

import (
	"udyog_saarthi/internal/config" // Driver selection
	"udyog_saarthi/internal/domain" // Importing domain models

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL when a DB host is configured, otherwise to the
// local SQLite file so the service runs with zero setup.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBHost != "" {
		dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
	logrus.WithField("path", cfg.SQLitePath).Info("No DB host configured, using SQLite")
	return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing constraints, columns and indexes
	return db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.Application{})
}

// SeedJobs fills an empty jobs table with the catalog seed, keeping the
// catalog ids as primary keys. A non-empty table is left untouched and any
// failure is logged rather than fatal.
func SeedJobs(db *gorm.DB, seed []domain.Job) {
	var count int64
	if err := db.Model(&domain.Job{}).Count(&count).Error; err != nil {
		logrus.WithField("error", err.Error()).Warn("Seeding skipped")
		return
	}
	if count > 0 {
		return
	}
	rows := make([]domain.Job, len(seed))
	copy(rows, seed)
	if err := db.Create(&rows).Error; err != nil {
		logrus.WithField("error", err.Error()).Warn("Seeding failed")
		return
	}
	logrus.WithField("jobs", len(rows)).Info("Seeded jobs table from catalog")
}

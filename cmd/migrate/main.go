package main

import (
	"udyog_saarthi/internal/catalog" // Custom import path (Catalog seed)
	"udyog_saarthi/internal/config"  // Custom import path (Config)
	"udyog_saarthi/internal/db"      // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration and seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	db.SeedJobs(gdb, catalog.DefaultSeed())
	logrus.Info("Migration completed.")
}

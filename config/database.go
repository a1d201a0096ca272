// config/database.go

package config

import (
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the remote document store. The remote backend is optional:
// without DB_URL the app runs in guest-only mode, so a missing or failing
// connection logs and leaves DB nil instead of exiting.
func ConnectDB(dsn string) {
	if dsn == "" {
		slog.Warn("DB_URL is not set, remote persistence disabled; only guest mode is available")
		return
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Database connection failed, remote persistence disabled", "error", err)
		return
	}

	DB = db
	slog.Info("Connected to the database")
}

package testhelpers

import (
	"context"
	"database/sql"

	"github.com/georef-api/internal/repository/postgres"
)

// ApplyMigrations applies all .up.sql migration files from the specified directory
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	_, err := postgres.ApplyMigrations(context.Background(), db, migrationsPath, postgres.MigrateUp)
	return err
}

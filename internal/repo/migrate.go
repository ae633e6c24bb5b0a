package repo

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"taskmanager/migrations"
)

// Migrate applies the embedded migrations for dialect ("postgres" or
// "sqlite3") to db.
func Migrate(db *sql.DB, dialect string, logger goose.Logger) error {
	dir := migrations.PostgresDir
	if dialect == "sqlite3" {
		dir = migrations.SQLiteDir
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logger)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

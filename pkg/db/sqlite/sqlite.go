package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3" // migrate sqlite3 driver
	_ "github.com/golang-migrate/migrate/v4/source/file"      // file:// migration source
	_ "github.com/mattn/go-sqlite3"                           // SQLite driver
)

// ConnectAndMigrate applies all pending migrations and returns a ready
// database handle.
func ConnectAndMigrate(dbPath, migrationsPath string) (*sql.DB, error) {
	m, err := migrate.New("file://"+migrationsPath, "sqlite3://"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return nil, fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return nil, fmt.Errorf("close migration db: %w", dbErr)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

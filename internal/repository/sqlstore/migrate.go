package sqlstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// newMigrator binds the embedded migrations to db. The returned instance
// must not be closed while db is still in use, since closing it closes db.
func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite migrate driver: %w", err)
	}
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "riskwatch", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Migrate moves the schema of db. targetVersion < 0 migrates to the latest
// version, 0 rolls everything back, anything else migrates to that version.
// It reports the version before and after.
func Migrate(db *sql.DB, targetVersion int) (from, to uint, err error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, 0, err
	}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return from, from, fmt.Errorf("database is in a dirty state at version %d", from)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, from, fmt.Errorf("failed to migrate: %w", err)
	}

	to, _, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return from, 0, nil
	}
	return from, to, err
}

// MigrateFile opens the database file at path and migrates it like Migrate
func MigrateFile(path string, targetVersion int) (from, to uint, err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open SQLite database at %q: %w", path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	return Migrate(db, targetVersion)
}

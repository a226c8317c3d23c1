package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Schema migrations are read from a golang-migrate source URL such as
// "file://internal/infrastructure/persistence/postgres/migrations".

func withMigrator(dsn, source string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: open migrations %s: %w", source, err)
	}
	defer m.Close()
	return fn(m)
}

// RunMigrations applies every pending up migration. An up-to-date schema is
// not an error.
func RunMigrations(dsn, source string) error {
	return withMigrator(dsn, source, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("postgres: migrate up: %w", err)
		}
		return nil
	})
}

// RunMigrationsDown reverts every applied migration.
func RunMigrationsDown(dsn, source string) error {
	return withMigrator(dsn, source, func(m *migrate.Migrate) error {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("postgres: migrate down: %w", err)
		}
		return nil
	})
}

// MigrationVersion reports the applied schema version and whether the last
// run left it dirty. An empty schema is version 0.
func MigrationVersion(dsn, source string) (version uint, dirty bool, err error) {
	err = withMigrator(dsn, source, func(m *migrate.Migrate) error {
		var verr error
		version, dirty, verr = m.Version()
		switch {
		case errors.Is(verr, migrate.ErrNilVersion):
			version, dirty = 0, false
			return nil
		case verr != nil:
			return fmt.Errorf("postgres: read migration version: %w", verr)
		}
		return nil
	})
	return version, dirty, err
}

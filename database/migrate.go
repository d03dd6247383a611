package database

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationURL reads the database URL straight from the environment so the
// migrate subcommands work without a bot token configured
func migrationURL() string {
	return ConstructDatabaseURL(os.Getenv("DATABASE_URL"), os.Getenv("DATABASE_NAME"))
}

// MigrateUp applies every pending migration
func MigrateUp() error {
	return RunMigrationsWithURL(migrationURL())
}

// MigrateDown rolls back the given number of migrations
func MigrateDown(stepsArg string) error {
	steps, err := strconv.Atoi(stepsArg)
	if err != nil || steps <= 0 {
		return fmt.Errorf("invalid steps value %q", stepsArg)
	}

	return withMigrator(migrationURL(), func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info("No migrations to roll back")
				return nil
			}
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		logVersion(m, "Rolled back migrations")
		return nil
	})
}

// MigrateStatus logs the applied schema version
func MigrateStatus() error {
	return withMigrator(migrationURL(), func(m *migrate.Migrate) error {
		logVersion(m, "Current schema version")
		return nil
	})
}

// RunMigrationsWithURL applies every pending migration to databaseURL.
// Used at startup and by the test container setup.
func RunMigrationsWithURL(databaseURL string) error {
	return withMigrator(databaseURL, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Debug("Schema is up to date")
				return nil
			}
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logVersion(m, "Applied migrations")
		return nil
	})
}

func logVersion(m *migrate.Migrate, msg string) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Infof("%s: no migrations applied", msg)
	case err != nil:
		log.WithError(err).Warnf("%s: version unknown", msg)
	default:
		log.WithFields(log.Fields{
			"version": version,
			"dirty":   dirty,
		}).Info(msg)
	}
}

// withMigrator opens a migrate instance over the embedded SQL files, runs fn
// and closes both the source and the database handle
func withMigrator(databaseURL string, fn func(m *migrate.Migrate) error) error {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	db := stdlib.OpenDB(*poolConfig.ConnConfig)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warnf("Failed to close migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	return fn(m)
}

package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrationSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Migrate applies every pending migration.
func (d *Database) Migrate(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	migrations, err := migrationSource()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(d.Pool)
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", migrations, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	// Close returns the driver's connection to the pool.
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("close migrator", zap.NamedError("source", sourceErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("no migrations to apply")
	case err != nil:
		logger.Warn("read migration version", zap.Error(err))
	case dirty:
		logger.Warn("migrations left the database dirty", zap.Uint("version", version))
	default:
		logger.Info("migrations applied", zap.Uint("version", version))
	}

	return nil
}

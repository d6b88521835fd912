package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrator applies the embedded schema to Postgres.
type Migrator struct {
	dsn    string
	logger *zerolog.Logger
}

func NewMigrator(dsn string, logger *zerolog.Logger) (*Migrator, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Migrator{dsn: dsn, logger: logger}, nil
}

// Up runs all available migrations.
func (m *Migrator) Up() error {
	inst, close, err := m.instance()
	defer close()
	if err != nil {
		return err
	}

	if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	m.logger.Debug().Msg("migrations applied")
	return nil
}

// Down reverts all migrations.
func (m *Migrator) Down() error {
	inst, close, err := m.instance()
	defer close()
	if err != nil {
		return err
	}

	if err := inst.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not revert migrations: %w", err)
	}
	m.logger.Debug().Msg("migrations reverted")
	return nil
}

func (m *Migrator) instance() (instance *migrate.Migrate, close func(), err error) {
	close = func() {}

	src, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return nil, close, fmt.Errorf("could not create fs: %w", err)
	}

	instance, err = migrate.NewWithSourceInstance("iofs", src, driverURL(m.dsn))
	if err != nil {
		_ = src.Close()
		return nil, close, fmt.Errorf("could not create migration instance: %w", err)
	}
	close = func() {
		srcErr, dbErr := instance.Close()
		if srcErr != nil || dbErr != nil {
			m.logger.Error().AnErr("source", srcErr).AnErr("database", dbErr).Msg("could not close migrator")
		}
	}
	return instance, close, nil
}

// driverURL rewrites a postgres DSN onto the pgx migrate driver scheme.
func driverURL(dsn string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, p) {
			return "pgx://" + strings.TrimPrefix(dsn, p)
		}
	}
	return dsn
}

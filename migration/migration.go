package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/neftit-lab/backend/internal/entity"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

//go:embed mysql/* postgres/*
var migrationFS embed.FS

// MigrationsTempDir creates a temporary directory, populates it with the migration files of
// driver, and returns the path to that directory.
// It is the caller's responsibility to remove the directory when it is no longer needed.
func MigrationsTempDir(driver string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "migrations-*")
	if err != nil {
		return "", err
	}

	mFS, err := fs.Sub(migrationFS, driver)
	if err != nil {
		return "", err
	}

	if err := fs.WalkDir(mFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		content, err := fs.ReadFile(mFS, path)
		if err != nil {
			return err
		}

		return os.WriteFile(filepath.Join(tmpDir, path), content, 0600)
	}); err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}

	return tmpDir, nil
}

// Migrate brings the database schema up to date. The sqlite driver is only used for local runs
// and tests, so it is migrated from the entities directly.
func Migrate(ctx context.Context) error {
	driver := xcontext.Configs(ctx).Database.Driver
	if driver == "sqlite" {
		return entity.MigrateTable(ctx)
	}

	m, cleanup, err := newMigrate(ctx, driver)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	xcontext.Logger(ctx).Infof("Database is at version %d (dirty=%t)", version, dirty)
	return nil
}

// Rollback reverts the last steps migrations.
func Rollback(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("invalid number of steps %d", steps)
	}

	driver := xcontext.Configs(ctx).Database.Driver
	if driver == "sqlite" {
		return fmt.Errorf("rollback is not supported on %s", driver)
	}

	m, cleanup, err := newMigrate(ctx, driver)
	if err != nil {
		return err
	}
	defer cleanup()

	return m.Steps(-steps)
}

func newMigrate(ctx context.Context, driverName string) (*migrate.Migrate, func(), error) {
	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return nil, nil, err
	}

	var driver database.Driver
	switch driverName {
	case "mysql":
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case "postgres":
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	if err != nil {
		return nil, nil, err
	}

	migrationDir, err := MigrationsTempDir(driverName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary directory for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationDir, driverName, driver)
	if err != nil {
		os.RemoveAll(migrationDir)
		return nil, nil, err
	}

	m.Log = &migrateLogger{ctx: ctx}
	return m, func() { os.RemoveAll(migrationDir) }, nil
}

type migrateLogger struct {
	ctx context.Context
}

func (l *migrateLogger) Printf(format string, v ...any) {
	xcontext.Logger(l.ctx).Infof(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

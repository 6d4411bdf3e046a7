package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Tables lists the row types owned by the application, in creation order.
func Tables() []any {
	return []any{
		&models.ProjectRow{},
		&models.ClientRow{},
		&models.TaskRow{},
		&models.NoteRow{},
		&models.WebsiteRow{},
	}
}

// AutoMigrate creates or updates every table from the row types.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range Tables() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return checkTables(conn)
}

// RunSQLMigrations applies the embedded SQL migrations to the postgres
// database at url.
func RunSQLMigrations(url string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Info("sql migrations applied", "version", version, "dirty", dirty)
	return nil
}

// Migrate brings the schema up to date: SQL migrations when requested on
// postgres, AutoMigrate otherwise.
func Migrate(conn *gorm.DB, driver, url string, sqlMigrations bool) error {
	if sqlMigrations && driver == "postgres" {
		if err := RunSQLMigrations(url); err != nil {
			return err
		}
		return checkTables(conn)
	}
	if sqlMigrations {
		logger.Warn("sql migrations only target postgres, using automigrate", "driver", driver)
	}
	return AutoMigrate(conn)
}

func checkTables(conn *gorm.DB) error {
	for _, table := range []string{"projects", "clients", "tasks", "notes", "websites"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

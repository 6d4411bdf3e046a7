// Package db opens the database, applies the schema and seeds sample data.
package db

import (
	"fmt"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/config"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// sleep is replaced in tests.
var sleep = time.Sleep

// Connect opens the configured database, retrying while it starts up.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := NormalizeDSN(cfg.DSN())
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN for driver %s", cfg.Driver)
	}
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	logger.Info("connecting to database", "driver", cfg.Driver, "dsn", MaskDSN(dsn))
	var (
		conn *gorm.DB
		err  error
	)
	for i := 1; i <= connectAttempts; i++ {
		conn, err = gorm.Open(dialector(cfg.Driver, dsn), gcfg)
		if err == nil {
			err = conn.Exec("SELECT 1").Error
		}
		if err == nil {
			return conn, nil
		}
		logger.Warn("database not ready, retrying", "attempt", i, "of", connectAttempts, "error", err)
		if i < connectAttempts {
			sleep(connectDelay)
		}
	}
	return nil, fmt.Errorf("connect %s after %d attempts: %w", cfg.Driver, connectAttempts, err)
}

func dialector(driver, dsn string) gorm.Dialector {
	if driver == "sqlite" {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}

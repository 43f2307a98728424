// Package db opens the contract database and keeps its schema current.
package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diewo77/go-contracts/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// Open connects to the configured database. PostgreSQL connections are retried
// to give the server time to start.
func Open(cfg config.DatabaseConfig, debug bool, log *slog.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}

	if !cfg.IsPostgres() {
		db, err := gorm.Open(sqlite.Open(sqliteDSN(cfg.SQLitePath)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Info("database connected", "driver", "sqlite", "path", cfg.SQLitePath)
		return db, nil
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying", "attempt", i, "err", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect postgres after %d attempts: %w", connectAttempts, err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.Info("database connected", "driver", "postgres", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.DBName, "user", cfg.User)
	return db, nil
}

// sqliteDSN adds a busy timeout so concurrent writers wait instead of failing.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

// Ping checks that the database answers.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/go-contracts/internal/config"
	"github.com/diewo77/go-contracts/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate brings the schema up to date. With MIGRATIONS=1 on PostgreSQL the
// versioned SQL files are applied; otherwise gorm AutoMigrate is used.
func Migrate(db *gorm.DB, cfg config.DatabaseConfig, sqlMigrations bool) error {
	if sqlMigrations && cfg.IsPostgres() {
		if err := runSQLMigrations(cfg.URL()); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range models.All() {
			if err := db.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}
	// sanity check: ensure required core tables exist
	for _, table := range []string{"contracts", "settings"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// runSQLMigrations applies the embedded migrations with golang-migrate.
func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Seed inserts the default company settings without overwriting existing values.
func Seed(db *gorm.DB) error {
	for _, s := range models.DefaultSettings() {
		s := s
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", s.Key, err)
		}
	}
	return nil
}

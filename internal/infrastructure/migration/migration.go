// Package migration applies the embedded goose SQL migrations.
package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var scripts embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// GooseStrategy runs forward-only migrations for one database driver. Each
// migration file runs in its own transaction and goose records its version
// in goose_db_version.
type GooseStrategy struct {
	driver string
	logger logger.Interface
}

func NewGooseStrategy(driver string) *GooseStrategy {
	if driver == "" {
		driver = "sqlite"
	}
	return &GooseStrategy{
		driver: driver,
		logger: logger.WithComponent("migration.goose"),
	}
}

func (s *GooseStrategy) dialect() string {
	if s.driver == "mysql" {
		return "mysql"
	}
	return "sqlite3"
}

func (s *GooseStrategy) dir() string {
	if s.driver == "mysql" {
		return "scripts/mysql"
	}
	return "scripts/sqlite"
}

func (s *GooseStrategy) withGoose(db *gorm.DB, fn func(sqlDB *sql.DB) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scripts)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(s.dialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return fn(sqlDB)
}

// Migrate applies every pending migration in ascending order.
func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	return s.withGoose(db, func(sqlDB *sql.DB) error {
		currentVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			s.logger.Errorw("failed to get current version", "error", err)
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.Up(sqlDB, s.dir()); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

// GetVersion returns the highest applied migration version.
func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	var version int64
	err := s.withGoose(db, func(sqlDB *sql.DB) error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// MigrationStatus describes one migration file.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

// Status lists every known migration and whether it has been applied.
func (s *GooseStrategy) Status(db *gorm.DB) ([]MigrationStatus, error) {
	var out []MigrationStatus
	err := s.withGoose(db, func(sqlDB *sql.DB) error {
		current, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		migrations, err := goose.CollectMigrations(s.dir(), 0, goose.MaxVersion)
		if err != nil {
			return fmt.Errorf("failed to collect migrations: %w", err)
		}
		for _, m := range migrations {
			out = append(out, MigrationStatus{
				Version: m.Version,
				Source:  m.Source,
				Applied: m.Version <= current,
			})
		}
		return nil
	})
	return out, err
}

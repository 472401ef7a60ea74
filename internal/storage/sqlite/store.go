package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/migration"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/migrations"
)

// Store keeps days in a local SQLite file.
type Store struct {
	storage.DayTable
	path string
}

var (
	_ storage.Provider       = (*Store)(nil)
	_ storage.FileStore      = (*Store)(nil)
	_ storage.SchemaReporter = (*Store)(nil)
)

func NewStore(path string) *Store {
	return &Store{
		DayTable: storage.DayTable{Dialect: storage.SQLite},
		path:     path,
	}
}

// Init creates the database file if needed and brings its schema up to date.
func (s *Store) Init(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(ctx); err != nil {
		return err
	}

	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version.
func (s *Store) Load(ctx context.Context) error {
	if s.DB != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'auri init' first")
	}

	if err := s.open(ctx); err != nil {
		return err
	}

	return s.validateSchemaVersion(ctx)
}

func (s *Store) open(ctx context.Context) error {
	if s.DB != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serialises writers inside the process.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}

	s.DB = db
	return nil
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.DB = nil
	return err
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.DB, subFS), nil
}

func (s *Store) runMigrations(ctx context.Context) error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(ctx, func(msg string) {
		logger.Info(msg, "path", s.path)
	})
	return err
}

func (s *Store) validateSchemaVersion(ctx context.Context) error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion(ctx)
}

// SchemaStatus reports the applied and the newest known schema versions.
func (s *Store) SchemaStatus(ctx context.Context) (current, latest int, err error) {
	if s.DB == nil {
		return 0, 0, fmt.Errorf("storage not loaded")
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	return runner.Status(ctx)
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// DBPath is the database file, for backups.
func (s *Store) DBPath() string {
	return s.path
}

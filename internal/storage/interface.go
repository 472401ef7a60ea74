package storage

import (
	"context"

	"github.com/julianstephens/auri/internal/models"
)

// Provider is the day record store. Implementations are safe for use by one
// process; mutating calls are serialised by the underlying database.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Days
	UpsertDay(ctx context.Context, date models.Date, dayType, notes string) (bool, error)
	GetDay(ctx context.Context, date models.Date) (*models.DayRecord, error)
	DeleteDay(ctx context.Context, id int64) error

	// Navigation
	PreviousDate(ctx context.Context, date models.Date) (*models.Date, error)
	NextDate(ctx context.Context, date, today models.Date) (*models.Date, error)

	// Listing and statistics
	ListDays(ctx context.Context, page, pageSize int) (models.Page, error)
	TagFrequency(ctx context.Context, limit int) ([]models.TagCount, error)

	// Transfer
	ExportDays(ctx context.Context) ([]models.DayExport, error)
	ReplaceAll(ctx context.Context, days []models.DayExport) error

	// Utils
	GetConfigPath() string
}

// FileStore is implemented by providers backed by a single local database file,
// which is what the backup manager knows how to copy.
type FileStore interface {
	DBPath() string
}

// SchemaReporter is implemented by providers with a versioned schema.
type SchemaReporter interface {
	SchemaStatus(ctx context.Context) (current, latest int, err error)
}

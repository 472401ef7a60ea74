package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/models"
)

// ErrInvalidEntry is returned by ReplaceAll when an entry cannot be stored.
var ErrInvalidEntry = errors.New("invalid day entry")

const dayColumns = "id, date, day_type, notes, created_at"

// upsertDaySQL keeps id and created_at of an existing row for the date.
const upsertDaySQL = `
	INSERT INTO days (date, day_type, notes, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(date) DO UPDATE SET
		day_type = excluded.day_type,
		notes = excluded.notes`

// DayTable implements the day operations of Provider over a *sql.DB. Backends
// embed it and own opening and closing the handle.
type DayTable struct {
	DB      *sql.DB
	Dialect Dialect
	// Now stamps created_at; defaults to time.Now.
	Now func() time.Time
}

func (t *DayTable) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *DayTable) q(query string) string {
	return t.Dialect.Rebind(query)
}

func (t *DayTable) ready() error {
	if t.DB == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// UpsertDay stores dayType and notes for date. A blank day type is ignored and
// reports false; an existing record for the date keeps its id and created_at.
func (t *DayTable) UpsertDay(ctx context.Context, date models.Date, dayType, notes string) (bool, error) {
	dayType = strings.TrimSpace(dayType)
	notes = strings.TrimSpace(notes)
	if dayType == "" {
		return false, nil
	}
	if date.IsZero() {
		return false, fmt.Errorf("%w: missing date", ErrInvalidEntry)
	}
	if err := t.ready(); err != nil {
		return false, err
	}

	_, err := t.DB.ExecContext(ctx, t.q(upsertDaySQL),
		date, dayType, notes, t.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("failed to save day %s: %w", date, err)
	}
	return true, nil
}

// GetDay returns the record for date, or nil if there is none.
func (t *DayTable) GetDay(ctx context.Context, date models.Date) (*models.DayRecord, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	row := t.DB.QueryRowContext(ctx, t.q(`
		SELECT `+dayColumns+`
		FROM days WHERE date = ?
		ORDER BY id DESC LIMIT 1`), date)

	rec, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day %s: %w", date, err)
	}
	return &rec, nil
}

// PreviousDate returns the closest recorded date strictly before date.
func (t *DayTable) PreviousDate(ctx context.Context, date models.Date) (*models.Date, error) {
	return t.adjacentDate(ctx, `SELECT date FROM days WHERE date < ? ORDER BY date DESC LIMIT 1`, date)
}

// NextDate returns the closest recorded date strictly after date. With nothing
// later on record it falls back to today, as long as date is in the past.
func (t *DayTable) NextDate(ctx context.Context, date, today models.Date) (*models.Date, error) {
	next, err := t.adjacentDate(ctx, `SELECT date FROM days WHERE date > ? ORDER BY date ASC LIMIT 1`, date)
	if err != nil || next != nil {
		return next, err
	}
	if date.Before(today) {
		return &today, nil
	}
	return nil, nil
}

func (t *DayTable) adjacentDate(ctx context.Context, query string, date models.Date) (*models.Date, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	var d models.Date
	err := t.DB.QueryRowContext(ctx, t.q(query), date).Scan(&d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find date adjacent to %s: %w", date, err)
	}
	return &d, nil
}

// ListDays returns one page of records, newest date first. Pages are 1-based;
// page <= 0 is page 1 and pageSize <= 0 uses the default page size.
func (t *DayTable) ListDays(ctx context.Context, page, pageSize int) (models.Page, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	result := models.Page{Page: page, PageSize: pageSize, Days: []models.DayRecord{}}

	if err := t.ready(); err != nil {
		return result, err
	}

	// Count and rows come from the same transaction so they agree.
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM days").Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count days: %w", err)
	}

	rows, err := tx.QueryContext(ctx, t.q(`
		SELECT `+dayColumns+`
		FROM days
		ORDER BY date DESC, id DESC
		LIMIT ? OFFSET ?`), pageSize, (page-1)*pageSize)
	if err != nil {
		return result, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanDay(rows)
		if err != nil {
			return result, fmt.Errorf("failed to read day: %w", err)
		}
		result.Days = append(result.Days, rec)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to list days: %w", err)
	}

	return result, tx.Commit()
}

// TagFrequency counts records per exact day type, most frequent first.
func (t *DayTable) TagFrequency(ctx context.Context, limit int) ([]models.TagCount, error) {
	if limit <= 0 {
		limit = constants.DefaultStatsLimit
	}
	if err := t.ready(); err != nil {
		return nil, err
	}

	rows, err := t.DB.QueryContext(ctx, t.q(`
		SELECT day_type, COUNT(*) AS count
		FROM days
		GROUP BY day_type
		ORDER BY count DESC, day_type ASC
		LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count day types: %w", err)
	}
	defer rows.Close()

	stats := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.DayType, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to read day type count: %w", err)
		}
		stats = append(stats, tc)
	}
	return stats, rows.Err()
}

// DeleteDay removes the record with id. Unknown ids are not an error.
func (t *DayTable) DeleteDay(ctx context.Context, id int64) error {
	if err := t.ready(); err != nil {
		return err
	}
	if _, err := t.DB.ExecContext(ctx, t.q("DELETE FROM days WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete day %d: %w", id, err)
	}
	return nil
}

// ExportDays returns every record's user-facing fields, oldest date first.
func (t *DayTable) ExportDays(ctx context.Context) ([]models.DayExport, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	rows, err := t.DB.QueryContext(ctx, `
		SELECT date, day_type, notes
		FROM days
		ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to export days: %w", err)
	}
	defer rows.Close()

	days := []models.DayExport{}
	for rows.Next() {
		var d models.DayExport
		var notes sql.NullString
		if err := rows.Scan(&d.Date, &d.DayType, &notes); err != nil {
			return nil, fmt.Errorf("failed to read day: %w", err)
		}
		d.Notes = notes.String
		days = append(days, d)
	}
	return days, rows.Err()
}

// ReplaceAll deletes every record and stores days in their place, in order,
// with fresh ids. It runs in one transaction: any failure leaves the previous
// data untouched. Two entries for the same date resolve to the later one.
func (t *DayTable) ReplaceAll(ctx context.Context, days []models.DayExport) error {
	for i, d := range days {
		if err := ValidateEntry(d); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	if err := t.ready(); err != nil {
		return err
	}

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM days"); err != nil {
		return fmt.Errorf("failed to clear days: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, t.q(upsertDaySQL))
	if err != nil {
		return fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	createdAt := t.now().UTC().Format(time.RFC3339Nano)
	for i, d := range days {
		_, err := stmt.ExecContext(ctx, d.Date, strings.TrimSpace(d.DayType), strings.TrimSpace(d.Notes), createdAt)
		if err != nil {
			return fmt.Errorf("failed to import entry %d (%s): %w", i+1, d.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// ValidateEntry applies the write rules to an imported entry: a date and a
// non-blank day type.
func ValidateEntry(d models.DayExport) error {
	if d.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidEntry)
	}
	if strings.TrimSpace(d.DayType) == "" {
		return fmt.Errorf("%w: blank day type for %s", ErrInvalidEntry, d.Date)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(row rowScanner) (models.DayRecord, error) {
	var rec models.DayRecord
	var notes sql.NullString
	var createdAt timestamp
	if err := row.Scan(&rec.ID, &rec.Date, &rec.DayType, &notes, &createdAt); err != nil {
		return models.DayRecord{}, err
	}
	rec.Notes = notes.String
	rec.CreatedAt = createdAt.Time
	return rec, nil
}

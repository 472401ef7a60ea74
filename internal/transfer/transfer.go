// Package transfer reads and writes the JSON export format: an array of
// {"date", "day_type", "notes"} objects.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/models"
	"github.com/julianstephens/auri/internal/storage"
)

var (
	// ErrMalformedInput means the payload is not JSON or not a JSON array.
	ErrMalformedInput = errors.New("malformed import payload")
	// ErrInvalidEntry means an element of the array cannot be stored.
	ErrInvalidEntry = storage.ErrInvalidEntry
)

type entry struct {
	Date    string  `json:"date"`
	DayType string  `json:"day_type"`
	Notes   *string `json:"notes"`
}

// Encode writes days as a pretty-printed JSON array. A nil slice is written as [].
func Encode(w io.Writer, days []models.DayExport) error {
	if days == nil {
		days = []models.DayExport{}
	}
	data, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Decode parses an export payload. It checks the whole payload before
// returning so callers never act on part of a file.
func Decode(r io.Reader) ([]models.DayExport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedInput)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	days := make([]models.DayExport, 0, len(raw))
	for i, msg := range raw {
		var e entry
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, fmt.Errorf("entry %d: %w: %v", i+1, ErrInvalidEntry, err)
		}

		date, err := models.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w: %v", i+1, ErrInvalidEntry, err)
		}

		d := models.DayExport{Date: date, DayType: e.DayType}
		if e.Notes != nil {
			d.Notes = *e.Notes
		}
		if err := storage.ValidateEntry(d); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		days = append(days, d)
	}

	return days, nil
}

// FileName names an export taken on today, e.g. auri-export-2024-03-15.json.
func FileName(today models.Date) string {
	return constants.ExportFilePrefix + today.String() + ".json"
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/transfer"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("database is locked"), "Error: database is locked"},
		{"wrapped error", fmt.Errorf("failed to save day: %w", errors.New("disk full")), "Error: failed to save day: disk full"},
		{
			"malformed import",
			fmt.Errorf("cannot import days.json: %w", transfer.ErrMalformedInput),
			"Error: cannot import days.json: malformed import payload\nHint: import files must be a JSON array, as written by 'auri export'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	if got := Hint(fmt.Errorf("entry 3: %w: blank day type", storage.ErrInvalidEntry)); got == "" {
		t.Error("Hint() for an invalid entry is empty")
	}
	if got := Hint(errors.New("something else")); got != "" {
		t.Errorf("Hint() for an unknown error = %q, want empty", got)
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("invalid timezone %q", "Mars/Olympus_Mons")
	want := `Error: invalid timezone "Mars/Olympus_Mons"`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

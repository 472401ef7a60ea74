package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/auri/internal/keyring"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/migration"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/transfer"
)

// hints suggest a next step for failures the user can fix.
var hints = []struct {
	target error
	hint   string
}{
	{transfer.ErrMalformedInput, "import files must be a JSON array, as written by 'auri export'"},
	{storage.ErrInvalidEntry, "every entry needs a YYYY-MM-DD date and a non-blank day_type"},
	{migration.ErrSchemaOutdated, "run 'auri init' to upgrade the database"},
	{keyring.ErrKeyringUnavailable, "set AURI_DB_CONNECTION instead of using the keyring"},
}

// Hint returns a suggested fix for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err with an "Error: " prefix and, when known, a hint line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with the "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a formatted message.
func Fatalf(format string, args ...any) {
	logger.Error("Command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}

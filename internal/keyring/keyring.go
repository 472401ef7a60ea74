// Package keyring keeps the PostgreSQL connection string in the OS keyring,
// under the auri service name.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/utils"
)

var (
	// ErrNotFound is returned when no connection string is stored
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrNotPostgres is returned for values that are neither a postgres:// URL nor a key=value DSN
	ErrNotPostgres = errors.New("not a PostgreSQL connection string")
)

// probeUser is never written; reading it only tells us whether the keyring answers.
const probeUser = "availability-probe"

// Status is what the keyring holds for auri.
type Status struct {
	Available  bool
	Stored     bool
	ConnString string
}

// GetConnectionString returns the stored connection string, or ErrNotFound.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores connStr, replacing any earlier value.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if !utils.IsPostgresURL(connStr) && !strings.Contains(connStr, "host=") {
		return ErrNotPostgres
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string, or reports ErrNotFound.
func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort check that the OS keyring can be read.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Check reports whether the keyring is reachable and what it holds.
func Check() (Status, error) {
	if !IsAvailable() {
		return Status{}, nil
	}

	st := Status{Available: true}
	connStr, err := GetConnectionString()
	switch {
	case err == nil:
		st.Stored = true
		st.ConnString = connStr
	case !errors.Is(err, ErrNotFound):
		return st, err
	}
	return st, nil
}

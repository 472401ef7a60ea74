package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/auri/internal/backup"
	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/keyring"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/models"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/storage/postgres"
	"github.com/julianstephens/auri/internal/storage/sqlite"
	"github.com/julianstephens/auri/internal/utils"
)

// ErrNotFileStore is returned by backup operations on a store that is not a local file.
var ErrNotFileStore = errors.New("backups are only available for SQLite databases")

type Context struct {
	Store    storage.Provider
	Today    utils.Clock
	Timezone string

	// Out receives command output; nil means stdout.
	Out io.Writer
	// Confirm asks a yes/no question; nil means an interactive prompt.
	Confirm func(title, description string) (bool, error)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Writer exposes the output stream for commands that encode straight into it.
func (c *Context) Writer() io.Writer {
	return c.out()
}

// Ask runs the confirmation prompt.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	return PromptConfirm(title, description)
}

// PromptConfirm shows an interactive yes/no prompt, defaulting to no.
func PromptConfirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// CurrentDate reports today according to the configured clock.
func (c *Context) CurrentDate() (models.Date, error) {
	if c.Today == nil {
		return utils.TodayIn(c.Timezone)
	}
	return c.Today()
}

// ParseDateOrToday accepts YYYY-MM-DD, "today", "yesterday" or an empty string.
func (c *Context) ParseDateOrToday(s string) (models.Date, error) {
	switch s {
	case "", "today":
		return c.CurrentDate()
	case "yesterday":
		today, err := c.CurrentDate()
		if err != nil {
			return models.Date{}, err
		}
		return today.AddDays(-1), nil
	}
	return models.ParseDate(s)
}

// BackupManager returns the backup manager for the store's database file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	fs, ok := c.Store.(storage.FileStore)
	if !ok {
		return nil, ErrNotFileStore
	}
	return backup.NewManager(fs.DBPath()), nil
}

// BackupBeforeReplace copies the database aside before a destructive change.
// Stores that are not local files are left alone and report "".
func (c *Context) BackupBeforeReplace() (string, error) {
	mgr, err := c.BackupManager()
	if errors.Is(err, ErrNotFileStore) {
		logger.Debug("Skipping automatic backup", "store", c.Store.GetConfigPath())
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return mgr.CreateBackup()
}

// ResolveStore picks the storage backend for config. A connection string in
// the environment wins, then a PostgreSQL URL in config, then a connection
// string saved in the keyring when config was left at its default, and
// finally a SQLite file at config.
func ResolveStore(config string) (storage.Provider, error) {
	if connStr := os.Getenv(constants.ConnectionEnvVar); connStr != "" {
		logger.Debug("Using connection string from environment", "var", constants.ConnectionEnvVar)
		return postgres.New(connStr), nil
	}

	if utils.IsPostgresURL(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; " +
					"use 'auri keyring set', the " + constants.ConnectionEnvVar + " environment variable or a .pgpass file")
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	if config == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from keyring")
			return postgres.New(connStr), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

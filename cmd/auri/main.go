package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/cli/archive"
	"github.com/julianstephens/auri/internal/cli/backups"
	"github.com/julianstephens/auri/internal/cli/days"
	"github.com/julianstephens/auri/internal/cli/system"
	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/errors"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the AURI_DB_CONNECTION environment variable, .pgpass, or the OS keyring instead." default:"${default_config}" env:"AURI_CONFIG"`
	Timezone string `help:"IANA timezone that decides which day is today." default:"Local" env:"AURI_TIMEZONE"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Serve  system.ServeCmd   `cmd:"" help:"Run the web interface." default:"1"`
	Tui    system.TuiCmd     `cmd:"" help:"Browse and edit days in the terminal."`
	Init   system.InitCmd    `cmd:"" help:"Initialize auri storage."`
	Doctor system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Day    days.DayCmd       `cmd:"" help:"Show a day."`
	Set    days.SetCmd       `cmd:"" help:"Record what kind of day it was."`
	List   days.ListCmd      `cmd:"" help:"List recorded days, newest first."`
	Stats  days.StatsCmd     `cmd:"" help:"Show the most common day types."`
	Delete days.DeleteCmd    `cmd:"" help:"Delete a day by id."`
	Export archive.ExportCmd `cmd:"" help:"Export every day as JSON."`
	Import archive.ImportCmd `cmd:"" help:"Replace every day with an export file."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
}

// needsStore reports whether the selected command expects a loaded store.
// init and doctor manage loading themselves; keyring never touches the store.
func needsStore(kctx *kong.Context) bool {
	for node := kctx.Selected(); node != nil; node = node.Parent {
		switch node.Name {
		case "init", "doctor", "keyring":
			return false
		}
	}
	return true
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("What kind of day is today? A small journal of day types."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":             constants.Version,
			"default_config":      constants.DefaultConfigPath,
			"default_addr":        constants.DefaultAddr,
			"default_page_size":   strconv.Itoa(constants.DefaultPageSize),
			"default_stats_limit": strconv.Itoa(constants.DefaultStatsLimit),
		},
	)

	if !utils.ValidateTimezone(CLI.Timezone) {
		errors.Fatalf("invalid timezone %q", CLI.Timezone)
	}

	store, err := cli.ResolveStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	command := kctx.Command()
	serving := kctx.Selected() != nil && kctx.Selected().Name == "serve"
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(store),
		Console:   serving,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()
	logger.Debug("Starting auri", "version", constants.Version, "command", command, "store", store.GetConfigPath())

	appCtx := &cli.Context{
		Store:    store,
		Today:    utils.TimezoneClock(CLI.Timezone),
		Timezone: CLI.Timezone,
	}
	defer store.Close()

	if needsStore(kctx) {
		if err := store.Load(context.Background()); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// configDir is where logs go: next to a SQLite database, or the default
// config directory for PostgreSQL.
func configDir(store storage.Provider) string {
	if fs, ok := store.(storage.FileStore); ok {
		return filepath.Dir(fs.DBPath())
	}
	dir, err := utils.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return os.TempDir()
	}
	return dir
}

package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/storage"
	"github.com/julianstephens/auri/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}

	dbReachable := false
	if err := checkDBReachable(bg, ctx); err != nil {
		fail("Database reachable", err)
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(bg, ctx); err != nil {
			fail("Schema version", err)
		} else {
			ctx.Printf("✓ Schema version: OK\n")
		}
	} else {
		ctx.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Missing backups are a warning only
	switch err := checkBackupsPresent(ctx); {
	case errors.Is(err, cli.ErrNotFileStore):
		ctx.Printf("⊘ Backups present: SKIPPED (not a SQLite database)\n")
	case err != nil:
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	default:
		ctx.Printf("✓ Backups present: OK\n")
	}

	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.Printf("✓ Clock/timezone: OK\n")
	}

	if path := logger.FilePath(); path != "" {
		ctx.Printf("ℹ Log file: %s\n", path)
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(bg context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(bg); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.ListDays(bg, 1, 1); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(bg context.Context, ctx *cli.Context) error {
	reporter, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		return nil
	}

	current, latest, err := reporter.SchemaStatus(bg)
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("database is at version %d, expected %d; run 'auri init'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'auri backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Timezone)
	}

	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, err := ctx.CurrentDate(); err != nil {
		return fmt.Errorf("failed to determine today's date: %w", err)
	}
	return nil
}

package system

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/storage"
)

// InitCmd creates the database, or brings an existing one up to the latest schema.
type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database and start empty."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	if c.Force {
		if err := resetDatabase(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(bg); err != nil {
		return err
	}
	ctx.Printf("%s Initialized auri storage at: %s\n", cli.SuccessStyle.Render("✓"), ctx.Store.GetConfigPath())

	if reporter, ok := ctx.Store.(storage.SchemaReporter); ok {
		if current, _, err := reporter.SchemaStatus(bg); err == nil {
			ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("  schema version %d", current)))
		}
	}
	ctx.Println("Record today with: auri set <day type>")
	return nil
}

// resetDatabase removes the SQLite file behind the store so Init starts empty.
func resetDatabase(ctx *cli.Context) error {
	fs, ok := ctx.Store.(storage.FileStore)
	if !ok {
		return errors.New("--force is only supported for SQLite databases")
	}
	dbPath := fs.DBPath()

	_, err := os.Stat(dbPath)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	// The open handle must go before the file does
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

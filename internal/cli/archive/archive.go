package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/logger"
	"github.com/julianstephens/auri/internal/transfer"
	"github.com/julianstephens/auri/internal/utils"
)

// ExportCmd writes every day to a JSON file.
type ExportCmd struct {
	Output string `short:"o" help:"File to write, or '-' for stdout. Defaults to auri-export-<today>.json in the current directory."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	days, err := ctx.Store.ExportDays(context.Background())
	if err != nil {
		return err
	}

	if c.Output == "-" {
		return transfer.Encode(ctx.Writer(), days)
	}

	path, err := utils.ExpandPath(c.Output)
	if err != nil {
		return err
	}
	if path == "" {
		today, err := ctx.CurrentDate()
		if err != nil {
			return err
		}
		path = transfer.FileName(today)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		today, err := ctx.CurrentDate()
		if err != nil {
			return err
		}
		path = filepath.Join(path, transfer.FileName(today))
	}

	var buf bytes.Buffer
	if err := transfer.Encode(&buf, days); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	ctx.Printf("%s Exported %d days to %s\n", cli.SuccessStyle.Render("✓"), len(days), path)
	return nil
}

// ImportCmd replaces every day with the contents of an export file.
type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Replace without asking for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	days, err := transfer.Decode(f)
	if err != nil {
		return fmt.Errorf("cannot import %s: %w", c.File, err)
	}

	if !c.Yes {
		ok, err := ctx.Ask(
			fmt.Sprintf("Replace all entries with %d days from %s?", len(days), filepath.Base(c.File)),
			"This will DELETE all existing entries and replace them with the imported data.",
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	backupPath, err := ctx.BackupBeforeReplace()
	if err != nil {
		return fmt.Errorf("failed to back up before import: %w", err)
	}
	if backupPath != "" {
		ctx.Printf("Backup of current data: %s\n", filepath.Base(backupPath))
	}

	if err := ctx.Store.ReplaceAll(context.Background(), days); err != nil {
		return fmt.Errorf("import failed, existing entries kept: %w", err)
	}

	logger.Info("Import complete", "file", c.File, "days", len(days))
	ctx.Printf("%s Imported %d days\n", cli.SuccessStyle.Render("✓"), len(days))
	return nil
}

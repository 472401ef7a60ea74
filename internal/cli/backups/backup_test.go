package backups

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/auri/internal/cli/clitest"
	"github.com/julianstephens/auri/internal/constants"
)

func TestBackupCreateAndList(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-01", "Mending", "")

	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Backup created: "+constants.BackupFilePrefix) {
		t.Errorf("unexpected output: %s", env.Out.String())
	}

	env.Out.Reset()
	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	out := env.Out.String()
	if !strings.Contains(out, "Available backups (1 total") {
		t.Errorf("unexpected list output: %s", out)
	}
}

func TestBackupListEmpty(t *testing.T) {
	env := clitest.New(t)

	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", env.Out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-01", "Mending", "")

	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(env.Dir, constants.BackupDirName))
	if err != nil || len(entries) != 1 {
		t.Fatalf("want one backup, got %d (%v)", len(entries), err)
	}
	name := entries[0].Name()

	env.Seed(t, "2024-05-02", "Finding", "")

	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(env.Ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Previous database saved as") {
		t.Errorf("restore did not report a safety copy: %s", env.Out.String())
	}

	if err := env.Store.Load(context.Background()); err != nil {
		t.Fatalf("reopening store failed: %v", err)
	}
	if env.Day(t, "2024-05-01") == nil {
		t.Error("restored database lost the backed up day")
	}
	if env.Day(t, "2024-05-02") != nil {
		t.Error("restored database still has the day added after the backup")
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	env := clitest.New(t)
	env.Answer(false)

	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(env.Dir, constants.BackupDirName))
	if err != nil || len(entries) != 1 {
		t.Fatalf("want one backup, got %d (%v)", len(entries), err)
	}

	if err := (&BackupRestoreCmd{BackupFile: entries[0].Name()}).Run(env.Ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", env.Out.String())
	}
	if env.Store.DB == nil {
		t.Error("cancelled restore closed the store")
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	env := clitest.New(t)

	if err := (&BackupRestoreCmd{BackupFile: "auri-20000101-000000.db", Yes: true}).Run(env.Ctx); err == nil {
		t.Error("restore of a missing backup succeeded, want error")
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		t.Fatal(err)
	}
	inBackupDir := filepath.Join(backupDir, "auri-20240101-000000.db")
	if err := os.WriteFile(inBackupDir, nil, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := resolveBackupPath(inBackupDir, backupDir)
	if err != nil || got != inBackupDir {
		t.Errorf("absolute path: got %q, %v", got, err)
	}

	got, err = resolveBackupPath("auri-20240101-000000.db", backupDir)
	if err != nil || got != inBackupDir {
		t.Errorf("bare name: got %q, %v", got, err)
	}

	if _, err := resolveBackupPath(filepath.Join(dir, "missing.db"), backupDir); err == nil {
		t.Error("missing absolute path resolved, want error")
	}
	if _, err := resolveBackupPath("missing.db", backupDir); err == nil {
		t.Error("missing bare name resolved, want error")
	}
}

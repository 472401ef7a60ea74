package archive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/auri/internal/cli/clitest"
	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/transfer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestExportToFile(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-02", "Finding", "")
	env.Seed(t, "2024-05-01", "Mending", "Rest")

	out := filepath.Join(env.Dir, "export.json")
	if err := (&ExportCmd{Output: out}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	days, err := transfer.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not importable: %v", err)
	}
	if len(days) != 2 || days[0].Date.String() != "2024-05-01" {
		t.Errorf("exported %+v, want 2 days oldest first", days)
	}
	if !strings.Contains(env.Out.String(), "Exported 2 days") {
		t.Errorf("unexpected output: %s", env.Out.String())
	}
}

func TestExportIntoDirectory(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-01", "Mending", "")

	if err := (&ExportCmd{Output: env.Dir}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := filepath.Join(env.Dir, constants.ExportFilePrefix+"2024-06-01.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected export at %s: %v", want, err)
	}
}

func TestExportToStdout(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-01", "Mending", "")

	if err := (&ExportCmd{Output: "-"}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := "[\n  {\n    \"date\": \"2024-05-01\",\n    \"day_type\": \"Mending\",\n    \"notes\": \"\"\n  }\n]\n"
	if got := env.Out.String(); got != want {
		t.Errorf("stdout export =\n%s\nwant\n%s", got, want)
	}
}

func TestImportWithYes(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2020-01-01", "Old", "")

	file := filepath.Join(env.Dir, "in.json")
	writeFile(t, file, `[{"date":"2024-05-01","day_type":"Mending","notes":"Rest"},{"date":"2024-05-02","day_type":"Finding","notes":null}]`)

	if err := (&ImportCmd{File: file, Yes: true}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if env.Day(t, "2020-01-01") != nil {
		t.Error("import kept a day that was not in the file")
	}
	if rec := env.Day(t, "2024-05-01"); rec == nil || rec.Notes != "Rest" {
		t.Errorf("2024-05-01 = %+v, want Mending with notes", rec)
	}
	if rec := env.Day(t, "2024-05-02"); rec == nil || rec.Notes != "" {
		t.Errorf("2024-05-02 = %+v, want Finding without notes", rec)
	}

	backups, err := os.ReadDir(filepath.Join(env.Dir, constants.BackupDirName))
	if err != nil || len(backups) != 1 {
		t.Errorf("want one backup before import, got %d (%v)", len(backups), err)
	}
}

func TestImportConfirmed(t *testing.T) {
	env := clitest.New(t)
	env.Answer(true)

	file := filepath.Join(env.Dir, "in.json")
	writeFile(t, file, `[{"date":"2024-05-01","day_type":"Mending"}]`)

	if err := (&ImportCmd{File: file}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if env.Day(t, "2024-05-01") == nil {
		t.Error("confirmed import did not save the day")
	}
}

func TestImportCancelled(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2020-01-01", "Old", "")
	env.Answer(false)

	file := filepath.Join(env.Dir, "in.json")
	writeFile(t, file, `[]`)

	if err := (&ImportCmd{File: file}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if env.Day(t, "2020-01-01") == nil {
		t.Error("cancelled import removed existing days")
	}
	if !strings.Contains(env.Out.String(), "Import cancelled.") {
		t.Errorf("unexpected output: %s", env.Out.String())
	}
}

func TestImportRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "hello"},
		{"object", `{"date":"2024-05-01"}`},
		{"bad date", `[{"date":"May 1","day_type":"Mending"}]`},
		{"blank type", `[{"date":"2024-05-01","day_type":" "}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.New(t)
			env.Seed(t, "2020-01-01", "Old", "")

			file := filepath.Join(env.Dir, "in.json")
			writeFile(t, file, tt.content)

			if err := (&ImportCmd{File: file, Yes: true}).Run(env.Ctx); err == nil {
				t.Fatal("Run() succeeded, want error")
			}
			if env.Day(t, "2020-01-01") == nil {
				t.Error("rejected import changed the store")
			}
			page, err := env.Store.ListDays(context.Background(), 1, 10)
			if err != nil {
				t.Fatalf("ListDays() failed: %v", err)
			}
			if page.Total != 1 {
				t.Errorf("store has %d days, want 1", page.Total)
			}
		})
	}
}

package system

import (
	"os"
	"strings"
	"testing"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/cli/clitest"
	"github.com/julianstephens/auri/internal/storage/postgres"
)

func TestInitIsIdempotent(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-01", "Mending", "")

	if err := (&InitCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if env.Day(t, "2024-05-01") == nil {
		t.Error("init without --force lost existing days")
	}
	out := env.Out.String()
	if !strings.Contains(out, "Initialized auri storage at:") || !strings.Contains(out, "schema version 1") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestInitForce(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t, "2024-05-01", "Mending", "")

	if err := (&InitCmd{Force: true}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if env.Day(t, "2024-05-01") != nil {
		t.Error("init --force kept existing days")
	}
	if !strings.Contains(env.Out.String(), "Deleted existing database") {
		t.Errorf("unexpected output: %s", env.Out.String())
	}
}

func TestInitForceCreatesMissingDatabase(t *testing.T) {
	env := clitest.New(t)
	env.Store.Close()
	if err := os.Remove(env.Store.DBPath()); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if _, err := os.Stat(env.Store.DBPath()); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestInitForceRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://auri@localhost/auri")}

	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("init --force on PostgreSQL succeeded, want error")
	}
}

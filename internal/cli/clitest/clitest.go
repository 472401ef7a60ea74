// Package clitest builds command contexts backed by a throwaway SQLite database.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/models"
	"github.com/julianstephens/auri/internal/storage/sqlite"
	"github.com/julianstephens/auri/internal/utils"
)

// Today is the date every test context treats as the current day.
var Today = models.MustParseDate("2024-06-01")

// Env is a command context together with its captured output.
type Env struct {
	Ctx   *cli.Context
	Store *sqlite.Store
	Out   *bytes.Buffer
	Dir   string
}

// New returns an initialized store in a temp dir, a clock fixed at Today and
// a confirmation prompt that fails the test if it is ever shown.
func New(t *testing.T) *Env {
	t.Helper()

	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "auri.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &Env{
		Ctx: &cli.Context{
			Store:    store,
			Today:    utils.FixedClock(Today),
			Timezone: "UTC",
			Out:      out,
			Confirm: func(title, _ string) (bool, error) {
				t.Errorf("unexpected confirmation prompt: %s", title)
				return false, nil
			},
		},
		Store: store,
		Out:   out,
		Dir:   dir,
	}
}

// Answer makes every confirmation prompt return ok.
func (e *Env) Answer(ok bool) {
	e.Ctx.Confirm = func(string, string) (bool, error) { return ok, nil }
}

// Seed records a day, failing the test if it is not saved.
func (e *Env) Seed(t *testing.T, date, dayType, notes string) {
	t.Helper()
	saved, err := e.Store.UpsertDay(context.Background(), models.MustParseDate(date), dayType, notes)
	if err != nil {
		t.Fatalf("UpsertDay(%s) failed: %v", date, err)
	}
	if !saved {
		t.Fatalf("UpsertDay(%s, %q) reported not saved", date, dayType)
	}
}

// Day returns the record for date, or nil.
func (e *Env) Day(t *testing.T, date string) *models.DayRecord {
	t.Helper()
	rec, err := e.Store.GetDay(context.Background(), models.MustParseDate(date))
	if err != nil {
		t.Fatalf("GetDay(%s) failed: %v", date, err)
	}
	return rec
}

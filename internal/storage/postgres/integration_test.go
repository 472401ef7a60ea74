package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/julianstephens/auri/internal/models"
)

// TestStore_Integration runs the day operations against a real database.
// Set POSTGRES_TEST_URL to run it, e.g.
// POSTGRES_TEST_URL="postgres://auri@localhost:5432/auri_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	store := New(connStr)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	if err := store.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("Failed to clear days: %v", err)
	}

	date := models.MustParseDate("2024-01-10")
	t.Run("Upsert", func(t *testing.T) {
		for _, dayType := range []string{"Resting", "Mending"} {
			if _, err := store.UpsertDay(ctx, date, dayType, ""); err != nil {
				t.Fatalf("UpsertDay failed: %v", err)
			}
		}
		rec, err := store.GetDay(ctx, date)
		if err != nil || rec == nil {
			t.Fatalf("GetDay = %v, %v", rec, err)
		}
		if rec.DayType != "Mending" || !rec.Date.Equal(date) {
			t.Errorf("GetDay = %+v", rec)
		}
	})

	t.Run("Navigation", func(t *testing.T) {
		if _, err := store.UpsertDay(ctx, models.MustParseDate("2024-01-20"), "Later", ""); err != nil {
			t.Fatalf("UpsertDay failed: %v", err)
		}
		next, err := store.NextDate(ctx, models.MustParseDate("2024-01-15"), models.MustParseDate("2024-06-01"))
		if err != nil || next == nil || next.String() != "2024-01-20" {
			t.Errorf("NextDate = %v, %v", next, err)
		}
		prev, err := store.PreviousDate(ctx, models.MustParseDate("2024-01-15"))
		if err != nil || prev == nil || prev.String() != "2024-01-10" {
			t.Errorf("PreviousDate = %v, %v", prev, err)
		}
	})

	t.Run("ListAndStats", func(t *testing.T) {
		page, err := store.ListDays(ctx, 1, 1)
		if err != nil {
			t.Fatalf("ListDays failed: %v", err)
		}
		if page.Total != 2 || len(page.Days) != 1 || page.Days[0].Date.String() != "2024-01-20" {
			t.Errorf("ListDays = %+v", page)
		}
		stats, err := store.TagFrequency(ctx, 10)
		if err != nil || len(stats) != 2 {
			t.Errorf("TagFrequency = %+v, %v", stats, err)
		}
	})

	t.Run("ExportImport", func(t *testing.T) {
		exported, err := store.ExportDays(ctx)
		if err != nil {
			t.Fatalf("ExportDays failed: %v", err)
		}
		if err := store.ReplaceAll(ctx, exported[:1]); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}
		after, err := store.ExportDays(ctx)
		if err != nil || len(after) != 1 {
			t.Errorf("ExportDays after import = %+v, %v", after, err)
		}
	})
}

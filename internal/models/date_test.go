package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-15", "2024-03-15", false},
		{" 2024-03-15 ", "2024-03-15", false},
		{"2024-02-29", "2024-02-29", false},
		{"2023-02-29", "", true},
		{"2024-3-15", "", true},
		{"15/03/2024", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	a := MustParseDate("2024-01-10")
	b := MustParseDate("2024-01-20")

	if !a.Before(b) || a.After(b) {
		t.Errorf("%s should be before %s", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() inconsistent for %s and %s", a, b)
	}
	if !a.AddDays(10).Equal(b) {
		t.Errorf("%s + 10 days = %s, want %s", a, a.AddDays(10), b)
	}
	if got := MustParseDate("2024-03-01").AddDays(-1).String(); got != "2024-02-29" {
		t.Errorf("AddDays(-1) across leap day = %s, want 2024-02-29", got)
	}
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 20:00 UTC on the 14th is already the 15th in UTC+10.
	ts := time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC).In(loc)

	if got := DateOf(ts).String(); got != "2024-03-15" {
		t.Errorf("DateOf() = %s, want 2024-03-15", got)
	}
}

func TestDateZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if d.String() != "" {
		t.Errorf("zero Date String() = %q, want empty", d.String())
	}
	v, err := d.Value()
	if err != nil || v != nil {
		t.Errorf("zero Date Value() = %v, %v; want nil, nil", v, err)
	}
}

func TestDateScan(t *testing.T) {
	want := MustParseDate("2024-03-15")

	sources := []any{
		"2024-03-15",
		[]byte("2024-03-15"),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, src := range sources {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("Scan(%T) failed: %v", src, err)
		}
		if !d.Equal(want) {
			t.Errorf("Scan(%T) = %s, want %s", src, d, want)
		}
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
	if err := d.Scan("not a date"); err == nil {
		t.Error("Scan(garbage) should fail")
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(MustParseDate("2024-03-15"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2024-03-15"` {
		t.Errorf("Marshal = %s, want \"2024-03-15\"", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-12-31"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d.String() != "2024-12-31" {
		t.Errorf("Unmarshal = %s, want 2024-12-31", d)
	}
	if err := json.Unmarshal([]byte(`"31/12/2024"`), &d); err == nil {
		t.Error("Unmarshal of bad date should fail")
	}
}

func TestDisplay(t *testing.T) {
	if got := MustParseDate("2024-03-05").Display(); got != "March 05, 2024" {
		t.Errorf("Display() = %q, want %q", got, "March 05, 2024")
	}
}

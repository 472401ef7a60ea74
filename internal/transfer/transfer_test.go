package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/auri/internal/models"
)

var dateComparer = cmp.Comparer(func(a, b models.Date) bool { return a.Equal(b) })

func TestEncode(t *testing.T) {
	days := []models.DayExport{
		{Date: models.MustParseDate("2024-01-01"), DayType: "Mending", Notes: ""},
		{Date: models.MustParseDate("2024-01-02"), DayType: "Finding", Notes: "found it"},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, days); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := `[
  {
    "date": "2024-01-01",
    "day_type": "Mending",
    "notes": ""
  },
  {
    "date": "2024-01-02",
    "day_type": "Finding",
    "notes": "found it"
  }
]
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Encode output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Encode(nil) = %q, want []", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	days := []models.DayExport{
		{Date: models.MustParseDate("2023-12-31"), DayType: "Resting", Notes: "quiet <b>evening</b>"},
		{Date: models.MustParseDate("2024-02-29"), DayType: "Exploring"},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, days); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(days, got, dateComparer); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []models.DayExport
		wantErr error
	}{
		{
			name:  "empty array",
			input: "[]",
			want:  []models.DayExport{},
		},
		{
			name:  "null notes",
			input: `[{"date": "2024-01-01", "day_type": "Mending", "notes": null}]`,
			want:  []models.DayExport{{Date: models.MustParseDate("2024-01-01"), DayType: "Mending"}},
		},
		{
			name:  "missing notes and extra keys",
			input: `[{"date": "2024-01-01", "day_type": "Mending", "id": 7}]`,
			want:  []models.DayExport{{Date: models.MustParseDate("2024-01-01"), DayType: "Mending"}},
		},
		{
			name:    "not json",
			input:   "definitely not json",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "empty payload",
			input:   "   ",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "object instead of array",
			input:   `{"date": "2024-01-01", "day_type": "Mending"}`,
			wantErr: ErrMalformedInput,
		},
		{
			name:    "null payload",
			input:   "null",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "truncated array",
			input:   `[{"date": "2024-01-01", "day_type": "Mending"}`,
			wantErr: ErrMalformedInput,
		},
		{
			name:    "element is not an object",
			input:   `["2024-01-01"]`,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "bad date",
			input:   `[{"date": "01/02/2024", "day_type": "Mending"}]`,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "missing date",
			input:   `[{"day_type": "Mending"}]`,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "blank day type",
			input:   `[{"date": "2024-01-01", "day_type": "  "}]`,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "numeric notes",
			input:   `[{"date": "2024-01-01", "day_type": "Mending", "notes": 3}]`,
			wantErr: ErrInvalidEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, dateComparer); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	got := FileName(models.MustParseDate("2024-03-15"))
	if got != "auri-export-2024-03-15.json" {
		t.Errorf("FileName() = %q", got)
	}
}

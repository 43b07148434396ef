package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

func TestReadRaw(t *testing.T) {
	csv := `event_id,ticker,event_type,event_date_time
evt-1,RY-CA,Earnings,2025-03-10T13:30:00Z
evt-2,TD-CA,Conference,
`
	path := writeTempFile(t, "raw.csv", csv)

	events, err := ReadRaw(path)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if got := events[0].Get("ticker"); got != "RY-CA" {
		t.Errorf("events[0][ticker] = %q, want RY-CA", got)
	}
	if got := events[1].Get("event_date_time"); got != "" {
		t.Errorf("events[1][event_date_time] = %q, want empty", got)
	}
	// Rows are opaque: unknown columns pass through untouched
	if got := events[1].Get("event_type"); got != "Conference" {
		t.Errorf("events[1][event_type] = %q, want Conference", got)
	}
}

func TestReadRawFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadRaw(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
			t.Error("ReadRaw() expected error for missing file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, "empty.csv", "")
		if _, err := ReadRaw(path); err == nil {
			t.Error("ReadRaw() expected error for missing header")
		}
	})

	t.Run("ragged row", func(t *testing.T) {
		path := writeTempFile(t, "ragged.csv", "a,b,c\n1,2\n")
		if _, err := ReadRaw(path); err == nil {
			t.Error("ReadRaw() expected error for ragged row")
		}
	})
}

func TestWriteCanonicalHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "processed.csv")

	utc := time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC)
	toronto, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	events := []model.CanonicalEvent{{
		EventID:              "evt-1",
		Ticker:               "RY-CA",
		InstitutionName:      "Royal Bank of Canada",
		InstitutionID:        "1",
		InstitutionType:      "Canadian_Banks",
		EventType:            "Earnings",
		EventHeadline:        "Q1 2025 Earnings Call",
		EventDateTimeUTC:     utc,
		EventDateTimeLocal:   utc.In(toronto),
		EventDate:            "2025-03-10",
		EventTimeLocal:       "09:30 EDT",
		DataFetchedTimestamp: utc,
	}}

	if err := WriteCanonical(path, events); err != nil {
		t.Fatalf("WriteCanonical failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("output has %d lines, want 2", len(lines))
	}

	// The header is a byte-for-byte contract with the persistence stage.
	wantHeader := "event_id,ticker,institution_name,institution_id,institution_type," +
		"event_type,event_headline,event_date_time_utc,event_date_time_local," +
		"event_date,event_time_local,webcast_link,contact_info,fiscal_year," +
		"fiscal_period,data_fetched_timestamp"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	cells := strings.Split(lines[1], ",")
	if len(cells) != len(model.Columns) {
		t.Fatalf("row has %d cells, want %d", len(cells), len(model.Columns))
	}
	if cells[7] != "2025-03-10T13:30:00Z" {
		t.Errorf("event_date_time_utc cell = %q", cells[7])
	}
	if cells[8] != "2025-03-10T09:30:00-04:00" {
		t.Errorf("event_date_time_local cell = %q", cells[8])
	}
	// Null fields serialize as empty cells
	if cells[11] != "" || cells[12] != "" {
		t.Errorf("webcast/contact cells = %q/%q, want empty", cells[11], cells[12])
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.csv")

	events := []model.CanonicalEvent{
		{EventID: "evt-1", Ticker: "RY-CA", EventType: "Earnings"},
		{EventID: "evt-2", Ticker: "XYZ", EventType: "Conference"},
	}
	if err := WriteCanonical(path, events); err != nil {
		t.Fatalf("WriteCanonical failed: %v", err)
	}

	rows, err := ReadRaw(path)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if got := rows[0].Get("event_id"); got != "evt-1" {
		t.Errorf("rows[0][event_id] = %q, want evt-1", got)
	}
	if got := rows[1].Get("institution_name"); got != "" {
		t.Errorf("rows[1][institution_name] = %q, want empty", got)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

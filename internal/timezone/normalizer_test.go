package timezone

import (
	"errors"
	"testing"
	"time"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

func mustNew(t *testing.T, zone string) *Normalizer {
	t.Helper()
	n, err := New(zone)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", zone, err)
	}
	return n
}

func TestNewRejectsBadZone(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") expected error")
	}
	if _, err := New("Not/AZone"); err == nil {
		t.Error("New(Not/AZone) expected error")
	}
}

func TestParseUTC(t *testing.T) {
	n := mustNew(t, "America/Toronto")

	tests := []struct {
		name       string
		value      string
		want       time.Time
		wantReason string
	}{
		{
			name:  "rfc3339 utc",
			value: "2025-03-10T13:30:00Z",
			want:  time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			value: "2025-03-10T09:30:00-04:00",
			want:  time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
		},
		{
			name:  "space separated with offset",
			value: "2025-03-10 13:30:00Z",
			want:  time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
		},
		{
			name:       "naive datetime rejected",
			value:      "2025-03-10T13:30:00",
			wantReason: `timestamp "2025-03-10T13:30:00" has no timezone`,
		},
		{
			name:       "date only rejected",
			value:      "2025-03-10",
			wantReason: `timestamp "2025-03-10" has no timezone`,
		},
		{
			name:       "garbage rejected",
			value:      "next tuesday",
			wantReason: `unparsable timestamp "next tuesday"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.ParseUTC("event_date_time_utc", "evt-1", tt.value)
			if tt.wantReason != "" {
				var verr *model.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("ParseUTC(%q) error = %v, want ValidationError", tt.value, err)
				}
				if verr.Reason != tt.wantReason {
					t.Errorf("Reason = %q, want %q", verr.Reason, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseUTC(%q) failed: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseUTC(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestConvertUsesOffsetAtInstant(t *testing.T) {
	n := mustNew(t, "America/Toronto")

	// Toronto leaves DST at 2025-11-02 02:00 EDT (06:00 UTC); instants on
	// either side of the transition must carry different offsets.
	tests := []struct {
		name     string
		utc      time.Time
		wantDate string
		wantTime string
	}{
		{
			name:     "summer is EDT",
			utc:      time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
			wantDate: "2025-03-10",
			wantTime: "09:30 EDT",
		},
		{
			name:     "winter is EST",
			utc:      time.Date(2025, 1, 15, 13, 30, 0, 0, time.UTC),
			wantDate: "2025-01-15",
			wantTime: "08:30 EST",
		},
		{
			name:     "just before fall-back",
			utc:      time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC),
			wantDate: "2025-11-02",
			wantTime: "01:30 EDT",
		},
		{
			name:     "just after fall-back",
			utc:      time.Date(2025, 11, 2, 6, 30, 0, 0, time.UTC),
			wantDate: "2025-11-02",
			wantTime: "01:30 EST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := n.Convert(tt.utc)
			if local.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", local.Date, tt.wantDate)
			}
			if local.Time != tt.wantTime {
				t.Errorf("Time = %q, want %q", local.Time, tt.wantTime)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	n := mustNew(t, "America/Toronto")

	instants := []time.Time{
		time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC),
		time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC),
		time.Date(2025, 11, 2, 6, 30, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, utc := range instants {
		local := n.Convert(utc)
		if back := local.Instant.UTC(); !back.Equal(utc) {
			t.Errorf("round trip of %v via local = %v", utc, back)
		}
	}
}

func TestConvertUnconfirmedKeepsUTCDate(t *testing.T) {
	n := mustNew(t, "America/Toronto")

	// Midnight UTC is the previous evening in Toronto; an unconfirmed time
	// must not shift the event to the previous day.
	utc := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	local := n.ConvertUnconfirmed(utc)

	if local.Date != "2025-03-15" {
		t.Errorf("Date = %q, want %q", local.Date, "2025-03-15")
	}
	if local.Time != "00:00 EDT" {
		t.Errorf("Time = %q, want %q", local.Time, "00:00 EDT")
	}
	if got := local.Instant.Format("2006-01-02 15:04"); got != "2025-03-15 00:00" {
		t.Errorf("Instant = %q, want local midnight", got)
	}
}

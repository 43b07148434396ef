package timezone

import (
	"fmt"
	"time"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

// Accepted source timestamp layouts. All carry an explicit zone; a timestamp
// without one is ambiguous and rejected rather than assumed UTC.
var zonedLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
}

// Layouts that parse but carry no zone. Used only to distinguish "missing
// timezone" from "unparsable" in the rejection reason.
var nakedLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer converts UTC instants into a single configured local zone.
type Normalizer struct {
	loc  *time.Location
	name string
}

// New resolves an IANA zone identifier. An unknown identifier is a
// configuration error and fatal to the run.
func New(zone string) (*Normalizer, error) {
	if zone == "" {
		return nil, fmt.Errorf("timezone identifier is required")
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return &Normalizer{loc: loc, name: zone}, nil
}

// Zone returns the configured zone identifier.
func (n *Normalizer) Zone() string {
	return n.name
}

// ParseUTC parses a source timestamp into a UTC instant.
// A timestamp that parses only without zone information is rejected:
// assuming UTC here would corrupt every derived local field downstream.
func (n *Normalizer) ParseUTC(field, eventID, value string) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range nakedLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return time.Time{}, &model.ValidationError{
				EventID: eventID,
				Field:   field,
				Reason:  fmt.Sprintf("timestamp %q has no timezone", value),
			}
		}
	}
	return time.Time{}, &model.ValidationError{
		EventID: eventID,
		Field:   field,
		Reason:  fmt.Sprintf("unparsable timestamp %q", value),
	}
}

// Local is the result of converting one UTC instant.
type Local struct {
	Instant time.Time // Same instant, expressed in the target zone
	Date    string    // YYYY-MM-DD of the local instant
	Time    string    // "HH:MM EDT" style, abbreviation at that instant
}

// Convert expresses a UTC instant in the target zone. The date and time
// strings derive from the local instant, so the offset in effect at that
// specific instant (including DST transitions) is what they reflect.
func (n *Normalizer) Convert(utc time.Time) Local {
	local := utc.In(n.loc)
	return Local{
		Instant: local,
		Date:    local.Format("2006-01-02"),
		Time:    local.Format("15:04") + " " + local.Format("MST"),
	}
}

// ConvertUnconfirmed handles events whose source time is a placeholder
// (midnight UTC with an "Unspecified" market time code). The UTC calendar
// date is kept intact and the local time pinned to midnight of that date,
// so the event does not drift to the previous day during conversion.
func (n *Normalizer) ConvertUnconfirmed(utc time.Time) Local {
	y, m, d := utc.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, n.loc)
	return Local{
		Instant: midnight,
		Date:    midnight.Format("2006-01-02"),
		Time:    "00:00 " + midnight.Format("MST"),
	}
}

package model

import "time"

// -----------------------------------------------------------------------------
// Raw Types
// -----------------------------------------------------------------------------

// RawEvent is one row of the acquisition stage's output, keyed by source
// column name. The source schema is not known at compile time; the field
// mapper is the only component that interprets these keys.
type RawEvent map[string]string

// Get returns the value for a source column, or "" if absent.
func (r RawEvent) Get(key string) string {
	return r[key]
}

// -----------------------------------------------------------------------------
// Canonical Types
// -----------------------------------------------------------------------------

// CanonicalEvent is a calendar event in the fixed 16-field target schema.
// Empty string means null/absent; the CSV writer and database uploader both
// treat the two identically.
type CanonicalEvent struct {
	EventID              string    // Source event identifier
	Ticker               string    // Exchange ticker, after rewrite rules
	InstitutionName      string    // From registry, "" when unmatched
	InstitutionID        string    // From registry, "" when unmatched
	InstitutionType      string    // From registry, "" when unmatched
	EventType            string    // After rename rules
	EventHeadline        string    // Source description, "(Time TBD)" suffix when unconfirmed
	EventDateTimeUTC     time.Time // Authoritative instant
	EventDateTimeLocal   time.Time // Same instant in the configured zone
	EventDate            string    // YYYY-MM-DD, derived from local
	EventTimeLocal       string    // "HH:MM EDT", derived from local
	WebcastLink          string
	ContactInfo          string // "Contact: X | Phone: Y | Email: Z"
	FiscalYear           string
	FiscalPeriod         string
	DataFetchedTimestamp time.Time // Run start, identical across one run

	// TimeUnconfirmed marks events whose source time is a placeholder.
	// Not part of the output schema.
	TimeUnconfirmed bool
}

// Columns is the canonical CSV/database column order. The persistence
// collaborator expects this byte-for-byte.
var Columns = []string{
	"event_id",
	"ticker",
	"institution_name",
	"institution_id",
	"institution_type",
	"event_type",
	"event_headline",
	"event_date_time_utc",
	"event_date_time_local",
	"event_date",
	"event_time_local",
	"webcast_link",
	"contact_info",
	"fiscal_year",
	"fiscal_period",
	"data_fetched_timestamp",
}

// Row renders the event as CSV cells in canonical column order.
func (e CanonicalEvent) Row() []string {
	return []string{
		e.EventID,
		e.Ticker,
		e.InstitutionName,
		e.InstitutionID,
		e.InstitutionType,
		e.EventType,
		e.EventHeadline,
		formatInstant(e.EventDateTimeUTC),
		formatInstant(e.EventDateTimeLocal),
		e.EventDate,
		e.EventTimeLocal,
		e.WebcastLink,
		e.ContactInfo,
		e.FiscalYear,
		e.FiscalPeriod,
		formatInstant(e.DataFetchedTimestamp),
	}
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// -----------------------------------------------------------------------------
// Institution Types
// -----------------------------------------------------------------------------

// InstitutionCategory classifies a monitored institution.
type InstitutionCategory string

const (
	CategoryCanadianBank   InstitutionCategory = "Canadian_Banks"
	CategoryUSBank         InstitutionCategory = "US_Banks"
	CategoryEuropeanBank   InstitutionCategory = "European_Banks"
	CategoryInsurer        InstitutionCategory = "Insurers"
	CategoryAssetManager   InstitutionCategory = "Asset_Managers"
	CategoryMonolineLender InstitutionCategory = "Monoline_Lenders"
	CategoryTrustCompany   InstitutionCategory = "Trust_Companies"
)

// Valid reports whether the category is one of the fixed enumeration.
func (c InstitutionCategory) Valid() bool {
	switch c {
	case CategoryCanadianBank, CategoryUSBank, CategoryEuropeanBank,
		CategoryInsurer, CategoryAssetManager, CategoryMonolineLender,
		CategoryTrustCompany:
		return true
	}
	return false
}

// Institution is one entry of the monitored-institution registry.
// Immutable after load.
type Institution struct {
	Ticker string              // Registry key (uppercase)
	Name   string              // Display name
	ID     string              // Internal identifier
	Type   InstitutionCategory // Category
}

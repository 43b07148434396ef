package mapper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

// Canonical field names the mapper can populate. Fields with no entry here
// (event_date, event_time_local, institution_*, data_fetched_timestamp) are
// derived by later pipeline stages, never mapped from source columns.
const (
	FieldEventID          = "event_id"
	FieldTicker           = "ticker"
	FieldEventType        = "event_type"
	FieldEventDateTimeUTC = "event_date_time_utc"
	FieldEventHeadline    = "event_headline"
	FieldWebcastLink      = "webcast_link"
	FieldContactName      = "contact_name"
	FieldContactPhone     = "contact_phone"
	FieldContactEmail     = "contact_email"
	FieldFiscalYear       = "fiscal_year"
	FieldFiscalPeriod     = "fiscal_period"
	FieldMarketTimeCode   = "market_time_code"
	FieldLastModified     = "last_modified_date"
)

// Rule binds one canonical field to one source column.
type Rule struct {
	Canonical string `yaml:"canonical"`
	Source    string `yaml:"source"`
}

// Mapping is the ordered source-to-canonical translation table. Swapping the
// upstream source schema means editing this table, never the mapper logic.
type Mapping struct {
	Rules []Rule `yaml:"fields"`
}

// Default returns the mapping for the current API source schema.
func Default() Mapping {
	return Mapping{Rules: []Rule{
		{Canonical: FieldEventID, Source: "event_id"},
		{Canonical: FieldTicker, Source: "ticker"},
		{Canonical: FieldEventType, Source: "event_type"},
		{Canonical: FieldEventDateTimeUTC, Source: "event_date_time"},
		{Canonical: FieldEventHeadline, Source: "description"},
		{Canonical: FieldWebcastLink, Source: "webcast_link"},
		{Canonical: FieldContactName, Source: "contact_name"},
		{Canonical: FieldContactPhone, Source: "contact_phone"},
		{Canonical: FieldContactEmail, Source: "contact_email"},
		{Canonical: FieldFiscalYear, Source: "fiscal_year"},
		{Canonical: FieldFiscalPeriod, Source: "fiscal_period"},
		{Canonical: FieldMarketTimeCode, Source: "market_time_code"},
		{Canonical: FieldLastModified, Source: "last_modified_date"},
	}}
}

// LoadFile reads a mapping table from a YAML file.
func LoadFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("parse mapping yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Validate checks the table for empty or duplicate canonical names.
func (m Mapping) Validate() error {
	if len(m.Rules) == 0 {
		return fmt.Errorf("mapping has no fields")
	}
	seen := make(map[string]bool, len(m.Rules))
	for i, r := range m.Rules {
		if r.Canonical == "" {
			return fmt.Errorf("mapping field %d: canonical name is required", i)
		}
		if r.Source == "" {
			return fmt.Errorf("mapping field %q: source column is required", r.Canonical)
		}
		if seen[r.Canonical] {
			return fmt.Errorf("mapping field %q appears twice", r.Canonical)
		}
		seen[r.Canonical] = true
	}
	return nil
}

// Mapped is a partially-populated canonical record: only canonical fields
// whose source column was present and non-empty carry a key.
type Mapped map[string]string

// Get returns the mapped value for a canonical field, or "" if absent.
func (m Mapped) Get(field string) string {
	return m[field]
}

// Has reports whether a canonical field was populated.
func (m Mapped) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Apply translates one raw record through the mapping table. A source column
// missing from the raw record leaves the canonical field absent; upstream
// schema drift is handled by editing the table, not by failing here.
// Pure function of (record, mapping).
func (m Mapping) Apply(raw model.RawEvent) Mapped {
	out := make(Mapped, len(m.Rules))
	for _, r := range m.Rules {
		if v, ok := raw[r.Source]; ok && v != "" {
			out[r.Canonical] = v
		}
	}
	return out
}

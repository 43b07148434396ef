package model

import "fmt"

// ValidationError marks a per-record defect: a missing required field or an
// unparsable/ambiguous timestamp. The pipeline skips-and-counts these by
// default and aborts on the first one in strict mode.
type ValidationError struct {
	EventID string // Source event id, "" when that itself is missing
	Field   string // Canonical field at fault
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.EventID == "" {
		return fmt.Sprintf("invalid record: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid record %s: %s: %s", e.EventID, e.Field, e.Reason)
}

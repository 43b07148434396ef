package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// Summary aggregates per-record outcomes for one run. Per-record issues are
// counted here instead of raised individually: one bad record must not stop
// the batch.
type Summary struct {
	RunID     uuid.UUID // Identifies the run in logs
	StartedAt time.Time // Also the data_fetched_timestamp of every record

	RawCount    int // Records read from the source
	FilteredOut int // Dropped by the event-type policy
	Skipped     int // Dropped by validation (missing id/ticker, bad timestamp)
	Unmatched   int // Enriched with null institution fields
	Duplicates  int // Collapsed by the deduplicator
	Output      int // Records emitted

	// SkippedExamples holds up to MaxSkippedExamples validation messages.
	SkippedExamples []string

	// UnmatchedTickers lists the distinct tickers that missed the registry.
	UnmatchedTickers []string
}

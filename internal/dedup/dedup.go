package dedup

import (
	"log/slog"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

// identityKey decides that two records describe the same real-world event.
// Recurring types (earnings and friends) collapse on (ticker, type, date);
// for everything else the source event id is already authoritative.
type identityKey struct {
	recurring bool
	ticker    string
	eventType string
	date      string
	eventID   string
}

// Deduplicator collapses duplicate records per identity key.
type Deduplicator struct {
	recurring map[string]bool
	logger    *slog.Logger
}

// New creates a Deduplicator. recurringTypes lists the event types keyed by
// (ticker, type, date) instead of event id.
func New(recurringTypes []string, logger *slog.Logger) *Deduplicator {
	if logger == nil {
		logger = slog.Default()
	}
	recurring := make(map[string]bool, len(recurringTypes))
	for _, t := range recurringTypes {
		recurring[t] = true
	}
	return &Deduplicator{recurring: recurring, logger: logger}
}

func (d *Deduplicator) keyFor(e model.CanonicalEvent) identityKey {
	if d.recurring[e.EventType] {
		return identityKey{
			recurring: true,
			ticker:    e.Ticker,
			eventType: e.EventType,
			date:      e.EventDate,
		}
	}
	return identityKey{eventID: e.EventID}
}

// completeness counts non-empty optional payload fields. The survivor of a
// duplicate group is the record carrying the most of them.
func completeness(e model.CanonicalEvent) int {
	score := 0
	for _, v := range []string{
		e.EventHeadline,
		e.WebcastLink,
		e.ContactInfo,
		e.FiscalYear,
		e.FiscalPeriod,
	} {
		if v != "" {
			score++
		}
	}
	return score
}

// Dedupe returns at most one record per identity key, preserving the
// relative order of each key's first occurrence. Survivor policy: highest
// completeness wins; on a completeness tie the record appearing later in
// the input wins (assumed to be the more recent source snapshot). The
// policy depends only on the records and their relative order, so the same
// duplicate multiset always yields the same survivor. Running Dedupe on its
// own output is a no-op.
func (d *Deduplicator) Dedupe(events []model.CanonicalEvent) ([]model.CanonicalEvent, int) {
	type slot struct {
		pos   int // index in out
		score int
	}

	out := make([]model.CanonicalEvent, 0, len(events))
	seen := make(map[identityKey]slot, len(events))
	removed := 0

	for _, e := range events {
		key := d.keyFor(e)
		score := completeness(e)

		s, dup := seen[key]
		if !dup {
			seen[key] = slot{pos: len(out), score: score}
			out = append(out, e)
			continue
		}

		removed++
		if score >= s.score {
			// Later record wins ties; keep the first occurrence's position.
			out[s.pos] = e
			seen[key] = slot{pos: s.pos, score: score}
			d.logger.Debug("duplicate collapsed",
				"ticker", e.Ticker,
				"event_type", e.EventType,
				"event_date", e.EventDate,
				"kept", e.EventID,
			)
		} else {
			d.logger.Debug("duplicate dropped",
				"ticker", e.Ticker,
				"event_type", e.EventType,
				"event_date", e.EventDate,
				"dropped", e.EventID,
			)
		}
	}

	return out, removed
}

// Package dedup implements the Deduplicator component.
//
// The Deduplicator:
//   - Collapses records sharing an identity key to one survivor
//   - Keys recurring types by (ticker, event_type, event_date)
//   - Keys all other types by event_id alone
//   - Prefers the most complete record, then the latest in input order
//   - Emits survivors in first-occurrence order
package dedup

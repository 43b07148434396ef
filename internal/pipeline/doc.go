// Package pipeline orchestrates the normalization run.
//
// The pipeline:
//   - Maps raw rows to canonical fields (mapper)
//   - Enriches records from the institution registry
//   - Converts timestamps to the configured local zone
//   - Deduplicates and emits the canonical sequence
//
// Stages run as sequential batch passes over in-memory slices; I/O happens
// only at the boundaries. Fatal errors flip the run to the failed stage;
// per-record issues are aggregated into the run Summary.
package pipeline

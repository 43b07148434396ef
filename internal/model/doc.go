// Package model defines shared data types used across the refresh pipeline.
//
// Conventions:
//   - Timestamps: time.Time, always zone-aware; serialized as RFC 3339
//   - Null/absent string fields: "" (matches CSV cell semantics)
//   - Columns holds the canonical 16-column output order
package model

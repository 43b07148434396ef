// Package database implements the persistence sink.
//
// The uploader:
//   - Validates the target table against the canonical column set
//   - Performs a full refresh (delete all, insert all) in one transaction
//   - Supports a dry-run mode that touches nothing
//
// Schema enforcement itself belongs to the database; this package only
// conforms to it.
package database

// Package csvio handles the pipeline's file boundaries: raw rows in, the
// fixed 16-column canonical rows out. No transform logic lives here.
package csvio

// Package registry implements the Institution Registry component.
//
// The Institution Registry:
//   - Maps ticker symbols to institution metadata (name, id, category)
//   - Loads once from YAML at startup; malformed input is fatal
//   - Is read-only afterwards and injected into the pipeline
//   - Uppercases keys so source casing never misses a lookup
package registry

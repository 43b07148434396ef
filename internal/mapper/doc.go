// Package mapper implements the Field Mapper component.
//
// The Field Mapper:
//   - Translates source column names to canonical field names
//   - Is driven entirely by a declarative table (YAML-loadable)
//   - Propagates absence instead of erroring on schema drift
package mapper

// Package config loads and validates the refresh run configuration.
//
// Configuration is a single YAML file with ${VAR} environment expansion.
// Defaults cover the current API source; a new source should only need a
// different mapping file and policy tables.
package config

package config

// RefreshConfig is the root configuration for one refresh run.
type RefreshConfig struct {
	Source   SourceConfig   `yaml:"source"`
	Output   OutputConfig   `yaml:"output"`
	Timezone TimezoneConfig `yaml:"timezone"`
	Registry RegistryConfig `yaml:"registry"`
	Mapping  MappingConfig  `yaml:"mapping"`
	Policy   PolicyConfig   `yaml:"policy"`
	Database DBConfig       `yaml:"database"`
	Upload   UploadConfig   `yaml:"upload"`
}

// SourceConfig locates the raw events file produced by the acquisition stage.
type SourceConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the canonical events file this run writes.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// TimezoneConfig holds the target local zone for derived date/time fields.
type TimezoneConfig struct {
	Zone string `yaml:"zone"` // IANA identifier, e.g. "America/Toronto"
}

// RegistryConfig locates the monitored-institutions file.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

// MappingConfig locates the field-mapping table. Empty path means the
// built-in mapping for the current API source schema.
type MappingConfig struct {
	Path string `yaml:"path"`
}

// PolicyConfig holds the per-run transform policy. All of it is data:
// adapting to a new source means editing these tables, not the pipeline.
type PolicyConfig struct {
	// IncludedEventTypes lists source event types kept in the output.
	IncludedEventTypes []string `yaml:"included_event_types"`

	// ExcludedEventTypes are dropped outright, before anything else.
	ExcludedEventTypes []string `yaml:"excluded_event_types"`

	// RenameRules rewrite event types after filtering (source -> target).
	RenameRules map[string]string `yaml:"rename_rules"`

	// TickerRewrites fix cross-listing suffixes before registry lookup
	// (e.g. "RY-US" -> "RY-CA").
	TickerRewrites map[string]string `yaml:"ticker_rewrites"`

	// RecurringTypes are deduplicated by (ticker, type, date) instead of
	// event id.
	RecurringTypes []string `yaml:"recurring_types"`

	// Strict aborts the run on the first per-record validation error
	// instead of skipping and counting.
	Strict bool `yaml:"strict"`

	// MaxSkippedExamples bounds the example errors kept in the run summary.
	MaxSkippedExamples int `yaml:"max_skipped_examples"`
}

// DBConfig holds the PostgreSQL connection for the upload sink.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	Table    string `yaml:"table"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// UploadConfig controls the persistence stage.
type UploadConfig struct {
	Enabled bool `yaml:"enabled"`
}

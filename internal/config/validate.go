package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// Anything caught here is a configuration error: the run aborts before any
// record is processed.
func (c *RefreshConfig) Validate() error {
	if c.Source.Path == "" {
		return errors.New("source.path is required")
	}
	if c.Output.Path == "" {
		return errors.New("output.path is required")
	}
	if c.Registry.Path == "" {
		return errors.New("registry.path is required")
	}
	if c.Timezone.Zone == "" {
		return errors.New("timezone.zone is required")
	}

	if c.Policy.MaxSkippedExamples < 0 {
		return fmt.Errorf("policy.max_skipped_examples must be >= 0, got %d", c.Policy.MaxSkippedExamples)
	}
	for source, target := range c.Policy.RenameRules {
		if source == "" || target == "" {
			return errors.New("policy.rename_rules entries must have non-empty source and target")
		}
	}

	if c.Upload.Enabled {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.Table == "" {
		return fmt.Errorf("%s.table is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

// WriteCanonical writes canonical events with exactly the 16 canonical
// column headers in fixed order. This is the byte-for-byte contract the
// persistence collaborator expects.
func WriteCanonical(path string, events []model.CanonicalEvent) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range events {
		if err := w.Write(e.Row()); err != nil {
			return fmt.Errorf("write event %s: %w", e.EventID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return f.Close()
}

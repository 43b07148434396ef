package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

// ReadRaw loads the acquisition stage's output: delimited rows under a
// header row naming source columns. Rows come back as opaque maps; only the
// field mapper interprets the keys. A malformed file is fatal to the run.
func ReadRaw(path string) ([]model.RawEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw events file: %w", err)
	}
	defer f.Close()

	events, err := readRaw(f)
	if err != nil {
		return nil, fmt.Errorf("read raw events file %s: %w", path, err)
	}
	return events, nil
}

func readRaw(r io.Reader) ([]model.RawEvent, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var events []model.RawEvent
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		event := make(model.RawEvent, len(header))
		for i, col := range header {
			event[col] = row[i]
		}
		events = append(events, event)
	}
	return events, nil
}

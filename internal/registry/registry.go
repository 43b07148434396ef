package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
)

// Registry is the static institution lookup table. Loaded once at startup
// and read-only for the rest of the run; a load failure is fatal because
// every record depends on it.
type Registry struct {
	byTicker map[string]model.Institution
}

// entry mirrors one YAML value in the monitored-institutions file, which is
// keyed by ticker:
//
//	RY-CA:
//	  name: Royal Bank of Canada
//	  id: "1"
//	  type: Canadian_Banks
type entry struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
}

// LoadFile reads the registry from a YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read institutions file: %w", err)
	}

	var raw map[string]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse institutions yaml: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("institutions file %s has no entries", path)
	}

	insts := make([]model.Institution, 0, len(raw))
	for ticker, e := range raw {
		insts = append(insts, model.Institution{
			Ticker: ticker,
			Name:   e.Name,
			ID:     e.ID,
			Type:   model.InstitutionCategory(e.Type),
		})
	}
	return New(insts)
}

// New builds a registry from already-loaded entries. Used directly in tests
// and by callers that source institutions elsewhere.
func New(insts []model.Institution) (*Registry, error) {
	byTicker := make(map[string]model.Institution, len(insts))
	for _, inst := range insts {
		key := strings.ToUpper(strings.TrimSpace(inst.Ticker))
		if key == "" {
			return nil, fmt.Errorf("institution %q: ticker is required", inst.Name)
		}
		if inst.Name == "" {
			return nil, fmt.Errorf("institution %s: name is required", key)
		}
		if !inst.Type.Valid() {
			return nil, fmt.Errorf("institution %s: unknown category %q", key, inst.Type)
		}
		if _, dup := byTicker[key]; dup {
			return nil, fmt.Errorf("institution %s: duplicate ticker", key)
		}
		inst.Ticker = key
		byTicker[key] = inst
	}
	return &Registry{byTicker: byTicker}, nil
}

// Lookup returns the institution for a ticker. The key is uppercased before
// comparison to tolerate source casing inconsistency.
func (r *Registry) Lookup(ticker string) (model.Institution, bool) {
	inst, ok := r.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return inst, ok
}

// Len returns the number of registered institutions.
func (r *Registry) Len() int {
	return len(r.byTicker)
}

// Tickers returns all registry keys in sorted order.
func (r *Registry) Tickers() []string {
	keys := make([]string, 0, len(r.byTicker))
	for k := range r.byTicker {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

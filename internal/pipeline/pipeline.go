package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/config"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/dedup"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/mapper"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/model"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/registry"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/timezone"
)

// timeUnconfirmedCode is the source's marker for placeholder event times.
const timeUnconfirmedCode = "Unspecified"

// Pipeline orchestrates mapping, enrichment, timezone conversion, and
// deduplication over one raw batch. All collaborators are injected,
// already loaded, and read-only for the duration of the run.
type Pipeline struct {
	mapping mapper.Mapping
	reg     *registry.Registry
	tz      *timezone.Normalizer
	dedup   *dedup.Deduplicator
	policy  config.PolicyConfig
	logger  *slog.Logger

	stage Stage
	now   func() time.Time
}

// New creates a Pipeline.
func New(
	mapping mapper.Mapping,
	reg *registry.Registry,
	tz *timezone.Normalizer,
	policy config.PolicyConfig,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		mapping: mapping,
		reg:     reg,
		tz:      tz,
		dedup:   dedup.New(policy.RecurringTypes, logger),
		policy:  policy,
		logger:  logger,
		stage:   StageNotStarted,
		now:     time.Now,
	}
}

// Stage returns the pipeline's current stage.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// record carries one event between stages: the mapped source values plus the
// canonical record being assembled. Stages never share records mutably; each
// pass owns its slice.
type record struct {
	mapped mapper.Mapped
	event  model.CanonicalEvent
}

// Run transforms one raw batch into the canonical sequence. The returned
// error is fatal (configuration or strict-mode validation); per-record
// issues are aggregated into the Summary instead.
func (p *Pipeline) Run(raws []model.RawEvent) ([]model.CanonicalEvent, Summary, error) {
	summary := Summary{
		RunID:     uuid.New(),
		StartedAt: p.now().UTC(),
		RawCount:  len(raws),
	}
	log := p.logger.With("run_id", summary.RunID)

	p.stage = StageMapping
	log.Info("mapping raw events", "count", len(raws))
	records, err := p.mapStage(raws, &summary)
	if err != nil {
		p.stage = StageFailed
		return nil, summary, err
	}

	p.stage = StageEnriching
	p.enrichStage(records, &summary)
	log.Info("enriched events",
		"count", len(records),
		"unmatched", summary.Unmatched,
	)

	p.stage = StageTimezoneConverting
	records, err = p.convertStage(records, &summary)
	if err != nil {
		p.stage = StageFailed
		return nil, summary, err
	}

	p.stage = StageDeduplicating
	events := make([]model.CanonicalEvent, len(records))
	for i, r := range records {
		events[i] = r.event
	}
	events, summary.Duplicates = p.dedup.Dedupe(events)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDateTimeUTC.Before(events[j].EventDateTimeUTC)
	})

	p.stage = StageCompleted
	summary.Output = len(events)
	log.Info("pipeline completed",
		"raw", summary.RawCount,
		"filtered_out", summary.FilteredOut,
		"skipped", summary.Skipped,
		"unmatched", summary.Unmatched,
		"duplicates", summary.Duplicates,
		"output", summary.Output,
	)
	return events, summary, nil
}

// mapStage translates raw rows through the mapping table, validates required
// fields, applies the event-type policy, and assembles the directly-mapped
// part of each canonical record.
func (p *Pipeline) mapStage(raws []model.RawEvent, summary *Summary) ([]record, error) {
	allowed := p.allowedTypes()
	excluded := make(map[string]bool, len(p.policy.ExcludedEventTypes))
	for _, t := range p.policy.ExcludedEventTypes {
		excluded[t] = true
	}

	records := make([]record, 0, len(raws))
	for _, raw := range raws {
		m := p.mapping.Apply(raw)

		if err := requireFields(m); err != nil {
			if skipErr := p.skip(summary, err); skipErr != nil {
				return nil, skipErr
			}
			continue
		}

		eventType := m.Get(mapper.FieldEventType)
		if excluded[eventType] {
			summary.FilteredOut++
			continue
		}
		if !allowed[eventType] {
			summary.FilteredOut++
			p.logger.Warn("unknown event type filtered", "event_type", eventType)
			continue
		}

		records = append(records, record{mapped: m, event: p.assemble(m)})
	}
	return records, nil
}

// allowedTypes is the include list plus every rename source, minus the
// explicit exclusions.
func (p *Pipeline) allowedTypes() map[string]bool {
	allowed := make(map[string]bool)
	for _, t := range p.policy.IncludedEventTypes {
		allowed[t] = true
	}
	for source := range p.policy.RenameRules {
		allowed[source] = true
	}
	for _, t := range p.policy.ExcludedEventTypes {
		delete(allowed, t)
	}
	return allowed
}

func requireFields(m mapper.Mapped) error {
	if !m.Has(mapper.FieldEventID) {
		return &model.ValidationError{
			Field:  mapper.FieldEventID,
			Reason: "required field is missing",
		}
	}
	if !m.Has(mapper.FieldTicker) {
		return &model.ValidationError{
			EventID: m.Get(mapper.FieldEventID),
			Field:   mapper.FieldTicker,
			Reason:  "required field is missing",
		}
	}
	return nil
}

// assemble builds the directly-derivable part of the canonical record:
// mapped fields, ticker rewrites, contact composition, fiscal-year cleanup.
func (p *Pipeline) assemble(m mapper.Mapped) model.CanonicalEvent {
	rawTicker := m.Get(mapper.FieldTicker)
	ticker := rawTicker
	if rewritten, ok := p.policy.TickerRewrites[ticker]; ok {
		ticker = rewritten
	}

	// Keep the headline consistent with the rewritten ticker.
	headline := m.Get(mapper.FieldEventHeadline)
	if ticker != rawTicker {
		headline = strings.ReplaceAll(headline, rawTicker, ticker)
	}

	return model.CanonicalEvent{
		EventID:         m.Get(mapper.FieldEventID),
		Ticker:          ticker,
		EventType:       m.Get(mapper.FieldEventType),
		EventHeadline:   headline,
		WebcastLink:     m.Get(mapper.FieldWebcastLink),
		ContactInfo:     composeContact(m),
		FiscalYear:      normalizeFiscalYear(m.Get(mapper.FieldFiscalYear)),
		FiscalPeriod:    m.Get(mapper.FieldFiscalPeriod),
		TimeUnconfirmed: m.Get(mapper.FieldMarketTimeCode) == timeUnconfirmedCode,
	}
}

// composeContact folds the mapped contact parts into one field.
func composeContact(m mapper.Mapped) string {
	var parts []string
	if name := m.Get(mapper.FieldContactName); name != "" {
		parts = append(parts, "Contact: "+name)
	}
	if phone := m.Get(mapper.FieldContactPhone); phone != "" {
		parts = append(parts, "Phone: "+phone)
	}
	if email := m.Get(mapper.FieldContactEmail); email != "" {
		parts = append(parts, "Email: "+email)
	}
	return strings.Join(parts, " | ")
}

// normalizeFiscalYear blanks the source's zero placeholder.
func normalizeFiscalYear(v string) string {
	switch v {
	case "0", "0.0":
		return ""
	}
	return v
}

// enrichStage fills institution metadata from the registry. A miss is
// non-fatal: the three fields stay null and the record proceeds, counted
// for observability.
func (p *Pipeline) enrichStage(records []record, summary *Summary) {
	missed := make(map[string]bool)
	for i := range records {
		inst, ok := p.reg.Lookup(records[i].event.Ticker)
		if !ok {
			summary.Unmatched++
			if !missed[records[i].event.Ticker] {
				missed[records[i].event.Ticker] = true
				p.logger.Warn("ticker not in registry",
					"ticker", records[i].event.Ticker,
					"event_id", records[i].event.EventID,
				)
			}
			continue
		}
		records[i].event.InstitutionName = inst.Name
		records[i].event.InstitutionID = inst.ID
		records[i].event.InstitutionType = string(inst.Type)
	}

	summary.UnmatchedTickers = make([]string, 0, len(missed))
	for t := range missed {
		summary.UnmatchedTickers = append(summary.UnmatchedTickers, t)
	}
	sort.Strings(summary.UnmatchedTickers)
}

// convertStage parses source timestamps and derives the local-zone fields.
// Records with no timestamp at all keep empty date/time fields; records
// with an unparsable or zone-less timestamp are validation failures.
func (p *Pipeline) convertStage(records []record, summary *Summary) ([]record, error) {
	out := records[:0]
	for _, r := range records {
		if !r.mapped.Has(mapper.FieldEventDateTimeUTC) {
			r.event.EventType = p.rename(r.event.EventType)
			r.event.DataFetchedTimestamp = summary.StartedAt
			out = append(out, r)
			continue
		}

		utc, err := p.tz.ParseUTC(
			mapper.FieldEventDateTimeUTC,
			r.event.EventID,
			r.mapped.Get(mapper.FieldEventDateTimeUTC),
		)
		if err != nil {
			if skipErr := p.skip(summary, err); skipErr != nil {
				return nil, skipErr
			}
			continue
		}

		var local timezone.Local
		if r.event.TimeUnconfirmed {
			local = p.tz.ConvertUnconfirmed(utc)
			r.event.EventHeadline += " (Time TBD)"
		} else {
			local = p.tz.Convert(utc)
		}

		r.event.EventDateTimeUTC = utc
		r.event.EventDateTimeLocal = local.Instant
		r.event.EventDate = local.Date
		r.event.EventTimeLocal = local.Time
		r.event.EventType = p.rename(r.event.EventType)
		r.event.DataFetchedTimestamp = summary.StartedAt
		out = append(out, r)
	}
	return out, nil
}

func (p *Pipeline) rename(eventType string) string {
	if target, ok := p.policy.RenameRules[eventType]; ok {
		return target
	}
	return eventType
}

// skip records a per-record validation failure, or promotes it to a fatal
// error in strict mode.
func (p *Pipeline) skip(summary *Summary, err error) error {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	if p.policy.Strict {
		return fmt.Errorf("strict mode: %w", err)
	}
	summary.Skipped++
	if len(summary.SkippedExamples) < p.policy.MaxSkippedExamples {
		summary.SkippedExamples = append(summary.SkippedExamples, err.Error())
	}
	p.logger.Warn("record skipped", "error", err)
	return nil
}

package config

// Default values for optional configuration fields.
const (
	DefaultZone               = "America/Toronto"
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultDBTable            = "aegis_calendar_events"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultMaxSkippedExamples = 5
)

// DefaultIncludedEventTypes are the source event types kept in the output.
func DefaultIncludedEventTypes() []string {
	return []string{
		"Earnings",
		"SalesRevenue",
		"Dividend",
		"Conference",
		"ShareholdersMeeting",
		"AnalystsInvestorsMeeting",
		"SpecialSituation",
	}
}

// DefaultExcludedEventTypes are dropped before processing. Projections are
// often inaccurate and release dates duplicate the call events.
func DefaultExcludedEventTypes() []string {
	return []string{
		"ProjectedEarningsRelease",
		"ConfirmedEarningsRelease",
	}
}

// DefaultRenameRules fold the sales-revenue variants into one type.
func DefaultRenameRules() map[string]string {
	return map[string]string{
		"SalesRevenueRelease": "SalesRevenue",
		"SalesRevenueCall":    "SalesRevenue",
	}
}

// DefaultTickerRewrites map the Canadian bank -US listings back to -CA.
// The source sometimes returns these under the US suffix, which would miss
// the registry. LB is absent: LB-US is a different company, not Laurentian.
func DefaultTickerRewrites() map[string]string {
	return map[string]string{
		"RY-US":  "RY-CA",
		"TD-US":  "TD-CA",
		"BMO-US": "BMO-CA",
		"BNS-US": "BNS-CA",
		"CM-US":  "CM-CA",
		"NA-US":  "NA-CA",
	}
}

// DefaultRecurringTypes are deduplicated by (ticker, type, date).
func DefaultRecurringTypes() []string {
	return []string{"Earnings"}
}

func (c *RefreshConfig) applyDefaults() {
	if c.Timezone.Zone == "" {
		c.Timezone.Zone = DefaultZone
	}

	// Policy defaults
	if c.Policy.IncludedEventTypes == nil {
		c.Policy.IncludedEventTypes = DefaultIncludedEventTypes()
	}
	if c.Policy.ExcludedEventTypes == nil {
		c.Policy.ExcludedEventTypes = DefaultExcludedEventTypes()
	}
	if c.Policy.RenameRules == nil {
		c.Policy.RenameRules = DefaultRenameRules()
	}
	if c.Policy.TickerRewrites == nil {
		c.Policy.TickerRewrites = DefaultTickerRewrites()
	}
	if c.Policy.RecurringTypes == nil {
		c.Policy.RecurringTypes = DefaultRecurringTypes()
	}
	if c.Policy.MaxSkippedExamples == 0 {
		c.Policy.MaxSkippedExamples = DefaultMaxSkippedExamples
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.Table == "" {
		c.Database.Table = DefaultDBTable
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}
}

package schema

// Custom string types for type safety.
type (
	// CategoryID identifies one of the fixed capability categories.
	CategoryID string

	// RuleKind is the tag of a metric normalization rule.
	RuleKind string

	// Trend is the direction of a country's score against its prior score.
	Trend string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All capability categories.
const (
	LaunchCategory           CategoryID = "launch"
	HumanSpaceflightCategory CategoryID = "human_spaceflight"
	PropulsionCategory       CategoryID = "propulsion"
	DeepSpaceCategory        CategoryID = "deep_space"
	SatellitesCategory       CategoryID = "satellites"
	InfrastructureCategory   CategoryID = "infrastructure"
	IndependenceCategory     CategoryID = "independence"
)

// All normalization rule kinds.
const (
	LinearRule      RuleKind = "linear"
	BooleanRule     RuleKind = "boolean"
	LogarithmicRule RuleKind = "logarithmic"
	InverseRule     RuleKind = "inverse"
)

// All trend values.
const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
	TrendUnknown   Trend = "unknown"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllCategories lists every category in canonical order.
// Breakdowns always report categories in this order.
var AllCategories = []CategoryID{
	LaunchCategory,
	HumanSpaceflightCategory,
	PropulsionCategory,
	DeepSpaceCategory,
	SatellitesCategory,
	InfrastructureCategory,
	IndependenceCategory,
}

// ValidCategories lists all valid category identifiers.
var ValidCategories = map[CategoryID]struct{}{
	LaunchCategory:           {},
	HumanSpaceflightCategory: {},
	PropulsionCategory:       {},
	DeepSpaceCategory:        {},
	SatellitesCategory:       {},
	InfrastructureCategory:   {},
	IndependenceCategory:     {},
}

// ValidRuleKinds lists all valid normalization rule kinds.
var ValidRuleKinds = map[RuleKind]struct{}{
	LinearRule:      {},
	BooleanRule:     {},
	LogarithmicRule: {},
	InverseRule:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

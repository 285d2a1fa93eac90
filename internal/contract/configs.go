package contract

import (
	"maps"
	"runtime"
	"slices"
	"strings"

	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/schema"
	"github.com/rotisserie/eris"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // 0 shows every country
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultServeAddr   = ":8080"
	DefaultLogLevel    = "info"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	DataPath    string
	ProfileName string
	Profile     *schema.ScoringProfile // Effective scoring profile after overrides
	Region      string
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	// Countries holds positional country ids for breakdown and compare
	Countries []string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	ServeAddr   string
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Countries []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Data             string  `mapstructure:"data"`
	Profile          string  `mapstructure:"profile"`
	Region           string  `mapstructure:"region"`
	Limit            int     `mapstructure:"limit"`
	Workers          int     `mapstructure:"workers"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Detail           bool    `mapstructure:"detail"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	StrengthMargin   *float64 `mapstructure:"strength-margin"` // Nil keeps the profile's margin
	TrendThreshold   *float64 `mapstructure:"trend-threshold"` // Nil keeps the profile's threshold
	CacheBackend     string  `mapstructure:"cache-backend"`
	CacheDBConnect   string  `mapstructure:"cache-db-connect"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	LogLevel         string  `mapstructure:"log-level"`
	LogFormat        string  `mapstructure:"log-format"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string `mapstructure:"addr"`
	CORSOrigins string `mapstructure:"cors-origins"`

	// --- Scoring overrides from config file ---
	Weights map[string]float64                  `mapstructure:"weights"`
	Tiers   []schema.TierThreshold              `mapstructure:"tiers"`
	Rules   map[string]schema.NormalizationRule `mapstructure:"rules"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Countries = slices.Clone(c.Countries)
	clone.CORSOrigins = slices.Clone(c.CORSOrigins)
	if c.Profile != nil {
		clone.Profile = c.Profile.Clone()
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Scoring configuration problems are
// reported here so the engine never runs with an invalid table.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processScoringProfile(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return eris.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return eris.New("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return eris.New("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return eris.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return eris.New("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return eris.New("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return eris.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return eris.Wrap(err, "cache backend")
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return eris.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return eris.Wrap(err, "history backend")
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return eris.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-scoring fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.DataPath = strings.TrimSpace(input.Data)
	cfg.Region = strings.TrimSpace(input.Region)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Countries = slices.Clone(input.Countries)
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	cfg.CORSOrigins = SplitList(input.CORSOrigins)
	cfg.LogLevel = input.LogLevel
	cfg.LogFormat = input.LogFormat

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return eris.Wrap(err, "invalid --color value")
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return eris.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return eris.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return eris.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return eris.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	return nil
}

// processScoringProfile loads the named built-in profile, applies overrides from
// the config file and flags, and rejects the result if any table is invalid.
func processScoringProfile(cfg *Config, input *ConfigRawInput) error {
	name := strings.ToLower(strings.TrimSpace(input.Profile))
	if name == "" {
		name = schema.DefaultProfileName
	}
	profile, err := schema.LoadProfile(name)
	if err != nil {
		return eris.Wrapf(err, "available profiles: %s", strings.Join(schema.ProfileNames(), ", "))
	}

	if err := applyWeightOverrides(profile, input.Weights); err != nil {
		return err
	}
	if len(input.Tiers) > 0 {
		profile.Tiers = slices.Clone(input.Tiers)
	}
	if len(input.Rules) > 0 {
		maps.Copy(profile.Rules, input.Rules)
	}

	if m := input.StrengthMargin; m != nil {
		if *m < 0 {
			return eris.Errorf("strength-margin must not be negative (received %.2f)", *m)
		}
		profile.StrengthMargin = *m
	}
	if th := input.TrendThreshold; th != nil {
		if *th < 0 {
			return eris.Errorf("trend-threshold must not be negative (received %.2f)", *th)
		}
		profile.TrendThreshold = *th
	}

	if err := algo.ValidateProfile(profile); err != nil {
		return eris.Wrapf(err, "profile %q", name)
	}

	cfg.ProfileName = name
	cfg.Profile = profile
	return nil
}

// applyWeightOverrides replaces category weights by id. The merged table is
// validated as a whole afterwards, so partial overrides must keep the sum at 1.0.
func applyWeightOverrides(profile *schema.ScoringProfile, weights map[string]float64) error {
	for key, w := range weights {
		cat := schema.CategoryID(strings.ToLower(strings.TrimSpace(key)))
		if _, ok := schema.ValidCategories[cat]; !ok {
			return eris.Wrapf(algo.ErrInvalidWeights, "unknown category %q in weights", key)
		}
		found := false
		for i := range profile.Categories {
			if profile.Categories[i].Category == cat {
				profile.Categories[i].Weight = w
				found = true
			}
		}
		if !found {
			profile.Categories = append(profile.Categories, schema.CategoryWeight{Category: cat, Weight: w})
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
}

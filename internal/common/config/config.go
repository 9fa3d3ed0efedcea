// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Discogs       DiscogsConfig       `mapstructure:"discogs"`
	Skill         SkillConfig         `mapstructure:"skill"`
	Breaker       BreakerConfig       `mapstructure:"breaker"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the webhook listener settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	SkillPath       string `mapstructure:"skill_path"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	SchemaPath      string `mapstructure:"schema_path"`      // optional override of the built-in envelope schema
}

// DiscogsConfig holds the catalog API client settings.
type DiscogsConfig struct {
	BaseURL             string `mapstructure:"base_url"`
	UserAgent           string `mapstructure:"user_agent"`
	Token               string `mapstructure:"token"`
	Timeout             int    `mapstructure:"timeout"` // milliseconds
	MaxIdleConns        int    `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int    `mapstructure:"max_idle_conns_per_host"`
}

// IntentConfig toggles a single custom intent handler.
type IntentConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SkillConfig holds the intent handler tuning knobs.
type SkillConfig struct {
	Name               string                  `mapstructure:"name"`
	ApplicationID      string                  `mapstructure:"application_id"`
	RandomMaxAttempts  int                     `mapstructure:"random_max_attempts"`
	ArtistSearchLimit  int                     `mapstructure:"artist_search_limit"`
	ListReleasesLimit  int                     `mapstructure:"list_releases_limit"`
	SearchReleaseLimit int                     `mapstructure:"search_release_limit"`
	Intents            map[string]IntentConfig `mapstructure:"intents"`
}

// BreakerConfig configures the circuit breaker around catalog calls.
type BreakerConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	MaxRequests  uint32  `mapstructure:"max_requests"`
	Interval     int     `mapstructure:"interval"` // milliseconds
	Timeout      int     `mapstructure:"timeout"`  // milliseconds
	MinRequests  uint32  `mapstructure:"min_requests"`
	FailureRatio float64 `mapstructure:"failure_ratio"`
}

// ObservabilityConfig holds metrics and tracing settings.
type ObservabilityConfig struct {
	ServiceName   string  `mapstructure:"service_name"`
	TracingEnable bool    `mapstructure:"tracing_enabled"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Intent names that can be switched off through skill.intents.<name>.enabled.
const (
	IntentListReleases  = "ListReleasesIntent"
	IntentSearchRelease = "SearchReleaseIntent"
	IntentRandomRelease = "RandomReleaseIntent"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay is optional.
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v, env)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v, os.Getenv("APP_ENVIRONMENT"))
}

func finish(v *viper.Viper, env string) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults that cannot be expressed as Go zero values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("breaker.enabled", true)
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets that are conventionally provided as bare env vars.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Discogs.Token == "" {
		if val := os.Getenv("DISCOGS_TOKEN"); val != "" {
			cfg.Discogs.Token = val
		}
	}
	if val := os.Getenv("DISCOGS_USER_AGENT"); val != "" {
		cfg.Discogs.UserAgent = val
	}
	if cfg.Skill.ApplicationID == "" {
		if val := os.Getenv("SKILL_APPLICATION_ID"); val != "" {
			cfg.Skill.ApplicationID = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "discogs-explorer"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.SkillPath == "" {
		cfg.Server.SkillPath = "/alexa"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if cfg.Discogs.BaseURL == "" {
		cfg.Discogs.BaseURL = "https://api.discogs.com"
	}
	if cfg.Discogs.UserAgent == "" {
		cfg.Discogs.UserAgent = "AlexaDiscogsSkill/1.0"
	}
	if cfg.Discogs.Timeout == 0 {
		cfg.Discogs.Timeout = 5000
	}
	if cfg.Discogs.MaxIdleConns == 0 {
		cfg.Discogs.MaxIdleConns = 100
	}
	if cfg.Discogs.MaxIdleConnsPerHost == 0 {
		cfg.Discogs.MaxIdleConnsPerHost = 10
	}

	if cfg.Skill.Name == "" {
		cfg.Skill.Name = "Discogs Explorer"
	}
	if cfg.Skill.RandomMaxAttempts == 0 {
		cfg.Skill.RandomMaxAttempts = 5
	}
	if cfg.Skill.ArtistSearchLimit == 0 {
		cfg.Skill.ArtistSearchLimit = 5
	}
	if cfg.Skill.ListReleasesLimit == 0 {
		cfg.Skill.ListReleasesLimit = 5
	}
	if cfg.Skill.SearchReleaseLimit == 0 {
		cfg.Skill.SearchReleaseLimit = 3
	}
	// viper lower-cases map keys; normalize so lookups are case-insensitive.
	intents := make(map[string]IntentConfig, len(cfg.Skill.Intents))
	for name, intent := range cfg.Skill.Intents {
		intents[strings.ToLower(name)] = intent
	}
	cfg.Skill.Intents = intents

	if cfg.Breaker.MaxRequests == 0 {
		cfg.Breaker.MaxRequests = 3
	}
	if cfg.Breaker.Interval == 0 {
		cfg.Breaker.Interval = 60000
	}
	if cfg.Breaker.Timeout == 0 {
		cfg.Breaker.Timeout = 30000
	}
	if cfg.Breaker.MinRequests == 0 {
		cfg.Breaker.MinRequests = 5
	}
	if cfg.Breaker.FailureRatio == 0 {
		cfg.Breaker.FailureRatio = 0.6
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Observability.SampleRatio == 0 {
		cfg.Observability.SampleRatio = 1.0
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if !strings.HasPrefix(cfg.Server.SkillPath, "/") {
		return fmt.Errorf("server.skill_path must start with '/'")
	}

	u, err := url.Parse(cfg.Discogs.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("discogs.base_url must be an absolute URL")
	}
	if strings.TrimSpace(cfg.Discogs.UserAgent) == "" {
		return fmt.Errorf("discogs.user_agent is required")
	}

	if cfg.Skill.RandomMaxAttempts < 1 {
		return fmt.Errorf("skill.random_max_attempts must be positive")
	}
	if cfg.Breaker.FailureRatio < 0 || cfg.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio must be between 0 and 1")
	}
	if cfg.Observability.SampleRatio < 0 || cfg.Observability.SampleRatio > 1 {
		return fmt.Errorf("observability.sample_ratio must be between 0 and 1")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// IsIntentEnabled checks if a custom intent handler is enabled. Intents are on
// unless explicitly disabled.
func IsIntentEnabled(cfg *Config, intentName string) bool {
	if intent, exists := cfg.Skill.Intents[strings.ToLower(intentName)]; exists {
		return intent.Enabled
	}
	return true
}

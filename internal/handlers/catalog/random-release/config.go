// internal/handlers/catalog/random-release/config.go
package randomrelease

import "time"

type Config struct {
	MaxAttempts int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxAttempts: 5,
		Timeout:     10 * time.Second,
	}
}

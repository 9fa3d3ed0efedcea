// internal/handlers/catalog/search-release/config.go
package searchrelease

import "time"

type Config struct {
	ResultLimit int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ResultLimit: 3,
		Timeout:     10 * time.Second,
	}
}

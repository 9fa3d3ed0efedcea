// internal/handlers/catalog/list-releases/config.go
package listreleases

import "time"

type Config struct {
	ArtistSearchLimit int
	ReleaseLimit      int
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ArtistSearchLimit: 5,
		ReleaseLimit:      5,
		Timeout:           10 * time.Second,
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds optional user defaults loaded from the XDG config file.
// Flags override config values; config values override built-in defaults.
type Config struct {
	// URL is the default catalog source.
	URL string `toml:"url"`

	// Cache is the destination path for the downloaded XML.
	Cache string `toml:"cache"`

	// Addr is the dashboard listen address.
	Addr string `toml:"addr"`

	// TimeoutSeconds bounds the catalog fetch.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// loadConfig reads the TOML config at path. A missing file is not an error
// and yields the zero config; a file that exists but cannot be decoded is.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// loadUserConfig loads the config from the XDG location, tolerating an
// unresolvable home directory.
func loadUserConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfig(path)
}

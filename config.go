package bookshelf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the name of the configuration file at the root of the home.
const ConfigFile = "bookshelf.toml"

// ShelfConfig binds a shelf prefix to a provider.
type ShelfConfig struct {
	Prefix   string `toml:"prefix"`
	Provider string `toml:"provider"`
	Currency string `toml:"currency"`
	Endpoint string `toml:"endpoint,omitempty"` // catalog base URL, the provider's own when empty.
}

// Config is the configuration of a home.
type Config struct {
	Shelves []ShelfConfig `toml:"shelf"`
}

// DefaultConfig returns the configuration used when the home has none.
func DefaultConfig() *Config {
	return &Config{
		Shelves: []ShelfConfig{
			{Prefix: "mtg/", Provider: "mtg", Currency: "eur"},
		},
	}
}

// LoadConfig reads the configuration file of the home, or returns the
// default configuration if there is none.
func LoadConfig(h *Home) (*Config, error) {
	filename := filepath.Join(h.Root(), ConfigFile)
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	cfg := new(Config)
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("format error %q: %w", filename, err)
	}
	for i, s := range cfg.Shelves {
		if s.Provider == "" {
			return nil, fmt.Errorf("format error %q: shelf #%d %q has no provider", filename, i+1, s.Prefix)
		}
	}
	return cfg, nil
}

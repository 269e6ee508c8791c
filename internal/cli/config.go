package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds flag defaults supplied by the optional config file at
// ~/.config/envmerge/config.toml:
//
//	output = "environment.yml"
//	remove_builds = true
//
// Command-line flags always win over config values.
type Config struct {
	Output       string `toml:"output"`
	RemoveBuilds bool   `toml:"remove_builds"`
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error and yields zero defaults;
// a present but malformed file is reported so typos don't silently
// disable settings.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

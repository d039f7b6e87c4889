package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	forceerr "github.com/forcelint/forcelint/internal/errors"
)

// globalTOML is the shape of ~/.forcelint.toml. Everything is optional;
// zero values mean "keep the current setting".
type globalTOML struct {
	Namespace   string   `toml:"namespace"`
	Exclude     []string `toml:"exclude"`
	Performance struct {
		MaxGoroutines int `toml:"max_goroutines"`
	} `toml:"performance"`
	Watch struct {
		Enabled    *bool `toml:"enabled"`
		DebounceMs int   `toml:"debounce_ms"`
	} `toml:"watch"`
}

// applyGlobalTOML overlays the user's global settings from
// ~/.forcelint.toml when the file exists. Project-level files loaded later
// override everything here except exclude patterns, which merge.
func applyGlobalTOML(cfg *Config, homeDir string) error {
	path := filepath.Join(homeDir, ".forcelint.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return forceerr.NewFileError("read", path, err)
	}

	var global globalTOML
	if err := toml.Unmarshal(data, &global); err != nil {
		return forceerr.NewConfigError(".forcelint.toml", path, err)
	}

	if global.Namespace != "" {
		cfg.Namespace = global.Namespace
	}
	cfg.Exclude = append(cfg.Exclude, global.Exclude...)
	if global.Performance.MaxGoroutines > 0 {
		cfg.Performance.MaxGoroutines = global.Performance.MaxGoroutines
	}
	if global.Watch.Enabled != nil {
		cfg.Watch.Enabled = *global.Watch.Enabled
	}
	if global.Watch.DebounceMs > 0 {
		cfg.Watch.DebounceMs = global.Watch.DebounceMs
	}

	return nil
}

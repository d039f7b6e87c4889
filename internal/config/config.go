// Package config loads the forcelint workspace configuration. Three layers
// stack on top of built-in defaults, lowest priority first:
//
//  1. ~/.forcelint.toml     global user settings
//  2. sfdx-project.json     package directories and namespace
//  3. .forcelint.kdl        project-level overrides
//
// Later layers win field by field; ignore patterns merge additively so a
// global exclusion can never be silently dropped by a project file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	forceerr "github.com/forcelint/forcelint/internal/errors"
)

type Config struct {
	Project     Project
	Namespace   string
	PackageDirs []string // ordered as configured; later entries win collisions
	Exclude     []string // extra ignore patterns, merged into .forceignore
	Performance Performance
	Watch       Watch
}

type Project struct {
	Root string
	Name string
}

type Performance struct {
	MaxGoroutines int // classifier workers for the scan pipeline
}

type Watch struct {
	Enabled    bool
	DebounceMs int
}

// sfdxProject mirrors the subset of sfdx-project.json the indexer needs.
type sfdxProject struct {
	PackageDirectories []struct {
		Path    string `json:"path"`
		Default bool   `json:"default"`
	} `json:"packageDirectories"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// Load builds the configuration for a project root.
func Load(root string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, forceerr.NewConfigError("root", root, err)
	}

	cfg := defaults(absRoot)

	// Global base config from the user's home directory.
	if home, err := os.UserHomeDir(); err == nil {
		if err := applyGlobalTOML(cfg, home); err != nil {
			return nil, err
		}
	}

	if err := applySfdxProject(cfg, absRoot); err != nil {
		return nil, err
	}

	if err := applyKDL(cfg, absRoot); err != nil {
		return nil, err
	}

	if len(cfg.PackageDirs) == 0 {
		// A bare directory with no project file is still a valid workspace.
		cfg.PackageDirs = []string{"."}
	}

	return cfg, nil
}

func defaults(root string) *Config {
	return &Config{
		Project: Project{Root: root},
		Performance: Performance{
			MaxGoroutines: runtime.NumCPU(),
		},
		Watch: Watch{
			Enabled:    true,
			DebounceMs: 300,
		},
	}
}

// applySfdxProject overlays package directories and namespace from
// sfdx-project.json when present.
func applySfdxProject(cfg *Config, root string) error {
	path := filepath.Join(root, "sfdx-project.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return forceerr.NewFileError("read", path, err)
	}

	var project sfdxProject
	if err := json.Unmarshal(data, &project); err != nil {
		return forceerr.NewConfigError("sfdx-project.json", path, err)
	}

	for _, dir := range project.PackageDirectories {
		if dir.Path != "" {
			cfg.PackageDirs = append(cfg.PackageDirs, dir.Path)
		}
	}
	if project.Namespace != "" {
		cfg.Namespace = project.Namespace
	}
	if project.Name != "" {
		cfg.Project.Name = project.Name
	}
	return nil
}

// RootPaths returns the package directories as absolute paths, in
// configuration order.
func (c *Config) RootPaths() []string {
	paths := make([]string, 0, len(c.PackageDirs))
	for _, dir := range c.PackageDirs {
		if filepath.IsAbs(dir) {
			paths = append(paths, filepath.Clean(dir))
			continue
		}
		paths = append(paths, filepath.Join(c.Project.Root, dir))
	}
	return paths
}

// Validate checks the loaded configuration for values the indexer cannot
// work with.
func (c *Config) Validate() error {
	if c.Project.Root == "" {
		return forceerr.NewConfigError("project.root", "", fmt.Errorf("project root must be set"))
	}
	if c.Performance.MaxGoroutines < 1 {
		return forceerr.NewConfigError("performance.max_goroutines",
			fmt.Sprintf("%d", c.Performance.MaxGoroutines),
			fmt.Errorf("must be at least 1"))
	}
	if c.Watch.DebounceMs < 0 {
		return forceerr.NewConfigError("watch.debounce_ms",
			fmt.Sprintf("%d", c.Watch.DebounceMs),
			fmt.Errorf("must not be negative"))
	}
	return nil
}

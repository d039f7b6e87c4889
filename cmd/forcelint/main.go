package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/forcelint/forcelint/internal/config"
	"github.com/forcelint/forcelint/internal/version"
)

var Version = version.Version

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	cfg, err := config.Load(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for %s: %w", absRoot, err)
	}

	if ns := c.String("namespace"); ns != "" {
		cfg.Namespace = ns
	}
	if paths := c.StringSlice("path"); len(paths) > 0 {
		cfg.PackageDirs = paths
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludes...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	cli.VersionPrinter = func(*cli.Context) {
		fmt.Println(version.FullInfo())
	}

	app := &cli.App{
		Name:                   "forcelint",
		Usage:                  "Metadata workspace indexing for Salesforce static analysis",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (defaults to the working directory)",
			},
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Package namespace (overrides project configuration)",
			},
			&cli.StringSliceFlag{
				Name:  "path",
				Usage: "Package directory to index, relative to the root (repeatable; overrides configuration)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Extra ignore pattern in .forceignore syntax (repeatable)",
			},
		},
		Commands: []*cli.Command{
			indexCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/forcelint/forcelint/internal/config"
	"github.com/forcelint/forcelint/internal/diag"
	forceerr "github.com/forcelint/forcelint/internal/errors"
	"github.com/forcelint/forcelint/internal/types"
	"github.com/forcelint/forcelint/internal/workspace"
	"github.com/forcelint/forcelint/pkg/pathutil"
)

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Scan the package directories and report indexed types and issues",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit non-zero when any issue is reported",
			},
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Resolve a qualified type name to its file after indexing (repeatable; classes and triggers only)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}

			ws, _, err := buildWorkspace(cfg)
			if err != nil {
				return err
			}

			issues := ws.Issues()
			fmt.Printf("Indexed %d types across %d package directories\n",
				ws.TypeCount(), len(cfg.PackageDirs))
			for _, issue := range issues {
				fmt.Printf("%s:%d: %s: %s\n",
					pathutil.ToRelative(issue.Path, cfg.Project.Root),
					issue.Line, issue.Category, issue.Message)
			}

			for _, name := range c.StringSlice("type") {
				fmt.Println(resolveType(ws, cfg.Project.Root, name))
			}

			if c.Bool("strict") && len(issues) > 0 {
				return strictError(issues)
			}
			return nil
		},
	}
}

// buildWorkspace assembles the ignore evaluator and indexes the workspace.
func buildWorkspace(cfg *config.Config) (*workspace.Workspace, *config.ForceIgnore, error) {
	ignore, err := config.LoadForceIgnore(cfg.Project.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load .forceignore: %w", err)
	}
	for _, pattern := range cfg.Exclude {
		ignore.AddPattern(pattern)
	}
	return workspace.New(cfg, ignore), ignore, nil
}

// resolveType looks up one dotted type name and renders the result line.
func resolveType(ws *workspace.Workspace, root, name string) string {
	doc := ws.GetByType(types.ParseTypeName(name))
	if doc == nil {
		return fmt.Sprintf("%s: not found", name)
	}
	return fmt.Sprintf("%s: %s", name, pathutil.ToRelative(doc.Path, root))
}

// strictError folds the issue log into the error the strict flag exits with.
func strictError(issues []diag.Issue) error {
	errs := make([]error, len(issues))
	for i, issue := range issues {
		errs[i] = errors.New(issue.String())
	}
	return forceerr.NewMultiError(errs)
}

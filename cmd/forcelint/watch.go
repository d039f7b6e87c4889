package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/forcelint/forcelint/internal/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Index the workspace, then keep the index current as files change",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			if !cfg.Watch.Enabled {
				return fmt.Errorf("file watching is disabled in configuration")
			}

			ws, ignore, err := buildWorkspace(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %d types, watching for changes...\n", ws.TypeCount())

			debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
			watcher, err := watch.New(ws, ignore, cfg.RootPaths(), debounce)
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			if err := watcher.Start(); err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			return watcher.Stop()
		},
	}
}

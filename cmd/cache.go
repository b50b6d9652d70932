package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/cache"
	"github.com/urfave/cli/v3"
)

func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the persistent lookup cache",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show cached game names and card sets",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output as JSON",
					},
				},
				Action: r.CacheShow,
			},
			{
				Name:   "clear",
				Usage:  "Delete the cache and autosaved results",
				Action: r.CacheClear,
			},
		},
	}
}

// CacheShow summarizes the persistent cache contents.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	doc := cache.Load(r.config.Cache.Path)

	if cmd.Bool("json") {
		return r.writeJSON(doc, true)
	}

	r.writePlainHeader("Lookup Cache")
	r.writePlain("Path:       %s\n", r.config.Cache.Path)
	r.writePlain("Game names: %d\n", len(doc.GameNames))
	r.writePlain("Card sets:  %d\n", len(doc.CardSets))

	saved := cache.LoadResults(r.config.Cache.ResultsPath)
	r.writePlain("Saved results: %d (%s)\n", len(saved), r.config.Cache.ResultsPath)
	return nil
}

// CacheClear removes the cache file and the autosaved results.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	removed := 0
	for _, path := range []string{r.config.Cache.Path, r.config.Cache.ResultsPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
		r.logger.Info("removed cache file", "path", path)
	}

	if removed == 0 {
		return r.writePlain("Nothing to clear\n")
	}
	return r.writePlain("✓ Cleared %d cache file(s)\n", removed)
}

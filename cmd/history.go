package main

import (
	"context"
	"fmt"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/repositories"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"github.com/urfave/cli/v3"
)

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past analysis runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of runs to show",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: r.History,
	}
}

// History lists recorded runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database (run 'badgehelper setup' first): %w", err)
	}
	defer db.Close()

	runs, err := repositories.NewRunRepository(db).List(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to list runs (run 'badgehelper setup' first): %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		return r.writePlain("No runs recorded yet\n")
	}

	r.writePlainHeader("Run History")
	for _, run := range runs {
		r.writePlain("#%d  %s  %s  %d results  %.2f %s  %s\n",
			run.Sequence,
			run.StartedAt.Format("2006-01-02 15:04"),
			run.SteamID,
			run.Results,
			run.TotalCost,
			run.Currency,
			run.Status,
		)
	}
	return nil
}

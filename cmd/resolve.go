package main

import (
	"context"
	"fmt"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"github.com/urfave/cli/v3"
)

func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve a profile URL or vanity name to a steamID64",
		ArgsUsage: "<steamID64 | vanity name | profile URL>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: r.Resolve,
	}
}

// Resolve prints the steamID64 for any accepted profile reference.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return fmt.Errorf("%w: profile (steamID64, vanity name, or URL)", shared.ErrMissingArgument)
	}

	steamID, err := r.steam.ResolveSteamID(ctx, input)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]string{"input": input, "steam_id": steamID}, true)
	}
	return r.writePlain("%s\n", steamID)
}

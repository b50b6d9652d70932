package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/ui"
	"github.com/urfave/cli/v3"
)

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Usage:     "Run the analysis in an interactive terminal UI",
		ArgsUsage: "<steamID64 | vanity name | profile URL>",
		Action:    r.TUI,
	}
}

// SetLogger replaces the runner logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// TUI launches the interactive terminal UI for badge analysis.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return fmt.Errorf("%w: profile (steamID64, vanity name, or URL)", shared.ErrMissingArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/badgehelper-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.newEngine(), input)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/repositories"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/tasks"
	"github.com/urfave/cli/v3"
)

func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze badge completion costs for a Steam profile",
		ArgsUsage: "<steamID64 | vanity name | profile URL>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output results as JSON",
			},
		},
		Action: r.Analyze,
	}
}

// Analyze runs the full analysis pipeline for one profile, streaming
// results to the terminal as they arrive. Ctrl-C stops the run and keeps
// everything computed so far.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return fmt.Errorf("%w: profile (steamID64, vanity name, or URL)", shared.ErrMissingArgument)
	}
	asJSON := cmd.Bool("json")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := r.newEngine()
	events := make(chan tasks.Event, 50)
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for ev := range events {
			switch ev := ev.(type) {
			case tasks.ProgressEvent:
				r.logger.Info(ev.Message, "phase", ev.Phase.String(), "step", ev.Step, "total", ev.Total)
			case tasks.ResultEvent:
				if !asJSON {
					r.printResult(ev.Result)
				}
			case tasks.ErrorEvent:
				r.logger.Error("analysis failed", "error", ev.Err)
			case tasks.DoneEvent:
				return
			}
		}
	}()

	startedAt := time.Now().UTC()
	report, runErr := engine.Run(ctx, input, events)
	close(events)
	<-consumerDone

	if report != nil {
		r.recordRun(report, input, runErr, startedAt)
	}
	if runErr != nil {
		return runErr
	}

	if asJSON {
		return r.writeJSON(report.Results, true)
	}

	r.writePlainHeader("Analysis Summary")
	r.writePlain("Profile:    %s\n", report.SteamID)
	r.writePlain("Analyzed:   %d collections\n", report.Analyzed)
	r.writePlain("Skipped:    %d collections\n", report.Skipped)
	r.writePlain("Total cost: %.2f %s\n", report.TotalCost, r.currencyLabel())
	if report.Cancelled {
		r.writePlain("Run interrupted — partial results saved to %s\n", r.config.Cache.ResultsPath)
	}
	return nil
}

func (r *Runner) printResult(result models.AnalysisResult) {
	if result.ToBuyCount == 0 {
		r.writePlain("✓ %s — set complete\n", result.Game)
		return
	}

	r.writePlain("• %s — %d cards missing, %s to complete\n", result.Game, result.ToBuyCount, result.FormatCost())
	for _, card := range result.ToBuy {
		if card.Price != nil {
			r.writePlain("    %s — %.2f\n", card.Name, *card.Price)
		} else {
			r.writePlain("    %s — price unknown\n", card.Name)
		}
	}
}

func (r *Runner) currencyLabel() string {
	if r.config.Steam.Currency != "" {
		return r.config.Steam.Currency
	}
	return "USD"
}

// recordRun appends the run to the history database. Best effort: a
// missing or unmigrated database only logs a warning. Runs that failed
// before profile resolution are recorded under the raw input.
func (r *Runner) recordRun(report *tasks.Report, input string, runErr error, startedAt time.Time) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("run history unavailable", "error", err)
		return
	}
	defer db.Close()

	status := models.RunStatusCompleted
	switch {
	case runErr != nil:
		status = models.RunStatusFailed
	case report.Cancelled:
		status = models.RunStatusCancelled
	}

	steamID := report.SteamID
	if steamID == "" {
		steamID = input
	}

	run := &models.Run{
		SteamID:    steamID,
		Currency:   r.currencyLabel(),
		Status:     status,
		Results:    len(report.Results),
		TotalCost:  report.TotalCost,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	if err := repositories.NewRunRepository(db).Create(run); err != nil {
		r.logger.Warn("failed to record run", "error", err)
	}
}

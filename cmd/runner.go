package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/cache"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/local"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/services"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	steam     services.Steam
	snapshots local.SnapshotProvider
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Steam     services.Steam
	Snapshots local.SnapshotProvider
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Snapshots == nil {
		opts.Snapshots = local.Empty{}
	}

	return &Runner{
		config:    opts.Config,
		steam:     opts.Steam,
		snapshots: opts.Snapshots,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

// newEngine assembles an analysis engine over the configured cache and
// result log.
func (r *Runner) newEngine() *tasks.AnalysisEngine {
	doc := cache.Load(r.config.Cache.Path)
	resultLog := cache.NewResultLog(r.config.Cache.ResultsPath)
	return tasks.NewAnalysisEngine(r.steam, r.snapshots, doc, r.config.Cache.Path, resultLog, r.logger)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, analyzeCommand, resolveCommand, cacheCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

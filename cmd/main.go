package main

import (
	"context"
	"os"
	"time"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/local"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/services"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	minInterval := config.Client.MinInterval()
	if minInterval <= 0 {
		minInterval = 4 * time.Second
	}

	clientOpts := []services.ClientOption{services.WithLogger(logger)}
	if config.Client.Retries > 0 {
		clientOpts = append(clientOpts, services.WithRetries(config.Client.Retries))
	}
	if config.Client.CooldownSeconds > 0 {
		clientOpts = append(clientOpts, services.WithCooldown(config.Client.Cooldown()))
	}
	if config.Client.MaxCooldowns > 0 {
		clientOpts = append(clientOpts, services.WithMaxCooldowns(config.Client.MaxCooldowns))
	}
	if config.Client.TimeoutSeconds > 0 {
		clientOpts = append(clientOpts, services.WithTimeout(config.Client.Timeout()))
	}
	client := services.NewClient(services.NewLimiter(minInterval), clientOpts...)

	steam, err := services.NewSteamService(client, config.Steam.APIKey, config.Steam.Currency, config.Steam.Language, logger)
	if err != nil {
		logger.Fatalf("invalid steam configuration: %v", err)
	}

	var snapshots local.SnapshotProvider = local.Empty{}
	if config.Cache.SnapshotDir != "" {
		if provider, err := local.NewDirProvider(config.Cache.SnapshotDir, logger); err == nil {
			snapshots = provider
		} else {
			logger.Warn("snapshot directory unavailable", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Steam:     steam,
		Snapshots: snapshots,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "badgehelper",
		Usage:    "Analyze Steam trading card badge completion costs",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

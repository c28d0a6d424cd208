package main

import (
	"fmt"

	"github.com/at-ishikawa/studydash/internal/assets"
	"github.com/at-ishikawa/studydash/internal/cli"
	"github.com/at-ishikawa/studydash/internal/config"
	"github.com/at-ishikawa/studydash/internal/timer"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// loadDashboardOptions reads the config and the seed it points to.
func loadDashboardOptions() (*config.Config, cli.DashboardOptions, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cli.DashboardOptions{}, err
	}

	seed, err := assets.LoadSeed(cfg.Seed.File)
	if err != nil {
		return nil, cli.DashboardOptions{}, fmt.Errorf("failed to load seed: %w", err)
	}
	location, err := cfg.Planner.LoadLocation()
	if err != nil {
		return nil, cli.DashboardOptions{}, err
	}

	return cfg, cli.DashboardOptions{
		Seed:          seed,
		TimerSettings: cfg.Timer.Settings(),
		TimerConfig: timer.Config{
			TickInterval: cfg.Timer.TickInterval,
		},
		ReminderTime:     cfg.Planner.ReminderTime,
		ReminderLocation: location,
	}, nil
}

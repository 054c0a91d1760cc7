// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Command botfactory runs the bot-provisioning Telegram service: it
// long-polls the Telegram Bot API, walks users through the template /
// token / name conversation, creates the repository on GitHub, and
// triggers the deployment on Railway.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/VladislavG32/telegram-bot-manager/lib/clock"
	"github.com/VladislavG32/telegram-bot-manager/lib/config"
	"github.com/VladislavG32/telegram-bot-manager/lib/github"
	"github.com/VladislavG32/telegram-bot-manager/lib/process"
	"github.com/VladislavG32/telegram-bot-manager/lib/railway"
	"github.com/VladislavG32/telegram-bot-manager/lib/templates"
	"github.com/VladislavG32/telegram-bot-manager/lib/version"
	"github.com/VladislavG32/telegram-bot-manager/provision"
	"github.com/VladislavG32/telegram-bot-manager/telegram"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		showVersion bool
	)
	pflag.StringVar(&configPath, "config", "", "path to the botfactory YAML config file (overrides BOTFACTORY_CONFIG)")
	pflag.BoolVar(&showVersion, "version", false, "print version information and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println(version.Info())
		return nil
	}

	// A .env file in the working directory is a development
	// convenience; deployments set the environment directly. Absence
	// is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var configuration *config.Config
	var err error
	if configPath != "" {
		configuration, err = config.LoadFile(configPath)
	} else {
		configuration, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := configuration.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	credentials, err := config.LoadCredentials()
	if err != nil {
		return err
	}

	registry, err := templates.NewRegistry(configuration.Templates)
	if err != nil {
		return fmt.Errorf("building template registry: %w", err)
	}

	telegramClient, err := telegram.NewClient(telegram.Config{
		Token:  credentials.TelegramToken,
		Logger: logger.With("component", "telegram"),
	})
	if err != nil {
		return err
	}
	githubClient, err := github.NewClient(github.Config{
		Token:  credentials.GitHubToken,
		Logger: logger.With("component", "github"),
	})
	if err != nil {
		return err
	}
	railwayClient, err := railway.NewClient(railway.Config{
		Token:         credentials.RailwayToken,
		ProjectID:     configuration.Railway.ProjectID,
		EnvironmentID: configuration.Railway.EnvironmentID,
		Logger:        logger.With("component", "railway"),
	})
	if err != nil {
		return err
	}

	controller, err := provision.NewController(provision.Config{
		Registry:    registry,
		Provisioner: githubClient,
		Deployer:    railwayClient,
		Messenger:   telegramClient,
		Logger:      logger.With("component", "provision"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Verify both credentials before serving: a bad bot token would
	// spin the poll loop, and a GitHub token from the wrong account
	// would provision repositories under that account.
	me, err := telegramClient.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("verifying bot credential: %w", err)
	}
	if _, err := githubClient.VerifyOperator(ctx, configuration.Operator); err != nil {
		return fmt.Errorf("verifying GitHub credential: %w", err)
	}

	logger.Info("botfactory running",
		"bot", me.Username,
		"operator", configuration.Operator,
		"templates", len(configuration.Templates),
	)

	telegram.RunUpdateLoop(ctx, telegramClient, telegram.UpdateLoopConfig{
		Timeout: configuration.Telegram.PollTimeoutSeconds,
	}, controller.HandleUpdate, clock.Real(), logger)

	logger.Info("shutting down, waiting for in-flight provisioning")
	controller.Wait()
	logger.Info("botfactory stopped")
	return nil
}

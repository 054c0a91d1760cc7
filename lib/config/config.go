// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the botfactory service configuration, loaded from a single
// YAML file. Credentials are deliberately not part of this struct —
// they come from the environment (see Credentials) so that the config
// file can be committed without secrets.
type Config struct {
	// Operator is the GitHub account under which new repositories are
	// created. The GitHub credential must belong to this account.
	Operator string `yaml:"operator"`

	// Railway configures the deployment target.
	Railway RailwayConfig `yaml:"railway"`

	// Telegram configures the messaging surface.
	Telegram TelegramConfig `yaml:"telegram"`

	// Templates maps display labels (shown to the user as a choice
	// keyboard) to "owner/repo" template coordinates.
	Templates map[string]string `yaml:"templates"`
}

// RailwayConfig configures the Railway deployment API.
type RailwayConfig struct {
	// ProjectID is the Railway project that new services are created
	// in. Found in the project settings.
	ProjectID string `yaml:"project_id"`

	// EnvironmentID is the Railway environment that service variables
	// are set in. Found in the environment settings.
	EnvironmentID string `yaml:"environment_id"`
}

// TelegramConfig configures the Telegram Bot API surface.
type TelegramConfig struct {
	// PollTimeoutSeconds is the getUpdates long-poll timeout. The
	// Telegram server holds the connection open for this duration
	// when no updates are available. Default: 30.
	PollTimeoutSeconds int `yaml:"poll_timeout_seconds"`
}

// Load loads configuration from the file named by the BOTFACTORY_CONFIG
// environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks and no automatic discovery — if
// BOTFACTORY_CONFIG is not set, this fails. This ensures deterministic,
// auditable configuration with no hidden overrides.
func Load() (*Config, error) {
	path := os.Getenv("BOTFACTORY_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("BOTFACTORY_CONFIG environment variable not set; " +
			"set it to the path of your botfactory.yaml config file, or use the --config flag")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth for non-secret settings;
// environment variables do not override its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	configuration := &Config{
		Telegram: TelegramConfig{PollTimeoutSeconds: 30},
	}
	if err := yaml.Unmarshal(data, configuration); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return configuration, nil
}

// Validate checks the configuration for errors. All failures are
// collected and reported together so a broken deployment can be fixed
// in one pass.
func (c *Config) Validate() error {
	var errs []error

	if c.Operator == "" {
		errs = append(errs, fmt.Errorf("operator is required"))
	}
	if c.Railway.ProjectID == "" {
		errs = append(errs, fmt.Errorf("railway.project_id is required"))
	}
	if c.Railway.EnvironmentID == "" {
		errs = append(errs, fmt.Errorf("railway.environment_id is required"))
	}
	if c.Telegram.PollTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("telegram.poll_timeout_seconds must not be negative"))
	}
	if len(c.Templates) == 0 {
		errs = append(errs, fmt.Errorf("at least one template entry is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Credentials holds the secret bearer tokens for the three external
// APIs. They are read from the environment, never from the config
// file.
type Credentials struct {
	// TelegramToken authenticates the manager bot itself against the
	// Telegram Bot API.
	TelegramToken string

	// GitHubToken is a personal access token for the operator account,
	// with repository creation rights.
	GitHubToken string

	// RailwayToken authenticates against the Railway GraphQL API.
	RailwayToken string
}

// Environment variable names for the three credentials.
const (
	EnvTelegramToken = "BOTFACTORY_TELEGRAM_TOKEN"
	EnvGitHubToken   = "BOTFACTORY_GITHUB_TOKEN"
	EnvRailwayToken  = "BOTFACTORY_RAILWAY_TOKEN"
)

// LoadCredentials reads the three credentials from the environment.
// All missing variables are reported together; the process must refuse
// to start when any is absent.
func LoadCredentials() (*Credentials, error) {
	credentials := &Credentials{
		TelegramToken: os.Getenv(EnvTelegramToken),
		GitHubToken:   os.Getenv(EnvGitHubToken),
		RailwayToken:  os.Getenv(EnvRailwayToken),
	}

	var errs []error
	if credentials.TelegramToken == "" {
		errs = append(errs, fmt.Errorf("%s is not set", EnvTelegramToken))
	}
	if credentials.GitHubToken == "" {
		errs = append(errs, fmt.Errorf("%s is not set", EnvGitHubToken))
	}
	if credentials.RailwayToken == "" {
		errs = append(errs, fmt.Errorf("%s is not set", EnvRailwayToken))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return credentials, nil
}

// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the botfactory
// service.
//
// Non-secret configuration is loaded from a single YAML file specified
// by either the BOTFACTORY_CONFIG environment variable (via [Load]) or
// a --config flag (via [LoadFile]). There are no fallbacks, no
// ~/.config discovery, and no automatic file search. This ensures
// deterministic, auditable configuration with no hidden overrides.
//
// Secrets never live in the file: the three bearer credentials
// (Telegram bot token, GitHub token, Railway token) are read from the
// environment via [LoadCredentials]. Both loaders collect every
// failure with errors.Join so a broken deployment surfaces all of its
// problems at once, and the process refuses to start if any required
// value is absent.
package config

// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Package templates holds the static registry mapping human-facing
// template labels to the template repositories they stand for.
//
// The registry is populated once at process start from the
// configuration file and is read-only thereafter. An unknown label is
// not an error — Lookup reports it with a false second return and the
// conversation layer re-prompts the user.
package templates

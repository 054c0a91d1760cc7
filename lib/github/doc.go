// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed Go client for the slice of the GitHub
// REST API that repository provisioning needs: resolving a template
// repository, verifying the authenticated identity, and generating a
// new private repository from the template.
//
// The client authenticates with a personal access token. All requests
// are made over HTTPS; the client refuses non-HTTPS base URLs. Errors
// are returned as structured [*APIError] values and classified with
// [IsNotFound], [IsUnauthorized], and [IsInvalidRequest].
//
// There is no retry or backoff anywhere in this client: a provisioning
// failure is reported once to the conversation that caused it.
package github

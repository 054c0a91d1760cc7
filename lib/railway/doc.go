// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Package railway provides a typed client for the slice of the Railway
// GraphQL API that deployment triggering needs: creating a service
// bound to a repository (which starts its first build) and setting
// variables on that service.
//
// Mutations are fixed query strings with typed variables objects —
// user-controlled values (repository names, tokens) never enter query
// text, eliminating the injection risk of string-built GraphQL.
//
// Triggering is fire-and-forget: the client reports trigger accepted
// or trigger rejected ([*DeployError]) and never polls the resulting
// deployment run.
package railway

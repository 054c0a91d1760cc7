// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Package provision drives the bot-creation conversation: it walks a
// chat through choosing a template, supplying a bot token, and naming
// the repository, then creates the repository from the template and
// triggers its deployment, reporting the combined outcome in a single
// message.
//
// The Controller keys one Session per chat and owns all transitions.
// Conversation steps run synchronously on the update loop; the final
// creation step runs in its own goroutine, guarded against
// double-submission by the session's Provisioning flag.
package provision

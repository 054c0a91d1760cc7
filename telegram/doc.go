// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

// Package telegram wraps the Telegram Bot API for the botfactory
// service's conversational surface.
//
// [Client] is a typed client over net/http: getMe for credential
// verification, sendMessage with reply keyboards for prompting, and
// getUpdates for long-polled inbound messages. Every response is
// unwrapped from the Bot API's {ok, result, error_code, description}
// envelope; a non-ok response becomes a structured [*APIError].
//
// [RunUpdateLoop] is the inbound pump: a long-poll loop with
// exponential backoff on transient errors that delivers each update
// exactly once to a handler, advancing the server-side offset as it
// goes.
//
// [ValidateBotToken] is the syntactic check applied to bot tokens that
// users paste into a provisioning conversation. It is a platform
// numbering convention, not authentication.
//
// Request URLs embed the bot token ("/bot{token}/{method}"), so the
// client refuses non-HTTPS base URLs and never includes the URL in
// error messages.
package telegram

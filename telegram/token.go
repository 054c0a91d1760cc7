// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package telegram

// ValidateBotToken reports whether a user-supplied string is shaped
// like a Telegram bot token: at least 20 characters, starting with a
// digit in 5 through 9.
//
// The leading-digit set is an artifact of the platform's bot ID
// numbering at the time of writing, not a cryptographic property. The
// check exists to catch pasted garbage before it is baked into a
// deployment, not to authenticate anything.
func ValidateBotToken(token string) bool {
	if len(token) < 20 {
		return false
	}
	switch token[0] {
	case '5', '6', '7', '8', '9':
		return true
	}
	return false
}

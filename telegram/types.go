// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package telegram

// Update is a single incoming event from getUpdates. Only message
// updates are requested; other update kinds arrive with a nil Message
// and are skipped by the update loop's callers.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is an incoming or sent chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// Chat identifies the conversation a message belongs to. For private
// conversations the chat ID doubles as the user identity.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"` // "private", "group", "supergroup", "channel"
}

// User is a Telegram account.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// SendMessageRequest is the payload for the sendMessage method.
// ReplyMarkup takes a *ReplyKeyboardMarkup or a ReplyKeyboardRemove;
// the Bot API accepts either under the same field.
type SendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// ReplyKeyboardMarkup presents a custom keyboard of predefined
// choices. The provisioning flow uses it to offer the template labels.
type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitempty"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitempty"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
}

// KeyboardButton is a single choice on a reply keyboard.
type KeyboardButton struct {
	Text string `json:"text"`
}

// ReplyKeyboardRemove dismisses a previously presented reply keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// SingleRowKeyboard builds a one-time reply keyboard with all labels
// on one row, the way the template choice is presented.
func SingleRowKeyboard(placeholder string, labels ...string) *ReplyKeyboardMarkup {
	row := make([]KeyboardButton, len(labels))
	for i, label := range labels {
		row[i] = KeyboardButton{Text: label}
	}
	return &ReplyKeyboardMarkup{
		Keyboard:              [][]KeyboardButton{row},
		OneTimeKeyboard:       true,
		ResizeKeyboard:        true,
		InputFieldPlaceholder: placeholder,
	}
}

// GetUpdatesRequest is the payload for the getUpdates method.
type GetUpdatesRequest struct {
	// Offset is the identifier of the first update to return,
	// normally the last seen update_id + 1. Updates below the offset
	// are confirmed and discarded by the server.
	Offset int64 `json:"offset,omitempty"`

	// Timeout is the long-poll timeout in seconds. Zero means short
	// polling.
	Timeout int `json:"timeout,omitempty"`

	// AllowedUpdates restricts the update kinds the server delivers.
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

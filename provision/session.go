// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"sync"

	"github.com/VladislavG32/telegram-bot-manager/lib/templates"
)

// State identifies where a conversation stands in the provisioning
// flow. A chat with no session is idle; /start creates a session at
// StateChoosingTemplate and the terminal transitions delete it.
type State int

const (
	// StateChoosingTemplate waits for the user to pick a template
	// label from the registry keyboard.
	StateChoosingTemplate State = iota

	// StateGettingToken waits for the bot token the deployed service
	// will run under.
	StateGettingToken

	// StateNaming waits for the repository name. The next message
	// dispatches the provisioning work.
	StateNaming
)

func (state State) String() string {
	switch state {
	case StateChoosingTemplate:
		return "choosing_template"
	case StateGettingToken:
		return "getting_token"
	case StateNaming:
		return "naming"
	default:
		return fmt.Sprintf("state(%d)", int(state))
	}
}

// Session is the per-chat conversation record. Template is set once
// the choosing step completes, BotToken once the token step completes.
// Provisioning marks a dispatched repository-creation run: messages
// arriving while it is set get a hold-on reply instead of mutating the
// session.
type Session struct {
	State        State
	Template     templates.Coordinate
	BotToken     string
	Provisioning bool
}

// sessionStore holds the per-chat sessions. Sessions are stored and
// returned by value; the controller mutates a copy and puts it back,
// so the only shared state is the map itself.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]Session)}
}

func (store *sessionStore) get(chatID int64) (Session, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	session, ok := store.sessions[chatID]
	return session, ok
}

func (store *sessionStore) put(chatID int64, session Session) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sessions[chatID] = session
}

func (store *sessionStore) delete(chatID int64) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, chatID)
}

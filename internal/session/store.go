// Package session tracks which chats are awaiting a free-text date reply.
// The flag is set when a command prompts for input and consumed exactly
// once by the next message, so two rapid messages from the same chat cannot
// both trigger a report.
package session

import "sync"

// Store is a per-chat awaiting-input registry. The zero value is not
// usable; construct with NewStore.
type Store struct {
	mu      sync.Mutex
	pending map[int64]struct{}
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{pending: make(map[int64]struct{})}
}

// Await marks the chat as waiting for a free-text date.
func (s *Store) Await(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = struct{}{}
}

// Consume atomically reads and clears the chat's awaiting flag. Only one
// caller observes true per Await.
func (s *Store) Consume(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[chatID]
	if ok {
		delete(s.pending, chatID)
	}
	return ok
}

// Clear drops the chat's flag without consuming it, for command handlers
// that supersede a pending prompt.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}

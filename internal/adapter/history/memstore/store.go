// Package memstore is an in-process history store for local development and
// tests.
package memstore

import (
	"sync"

	"github.com/careermitra/mentor-engine/internal/domain"
)

// Store implements domain.HistoryStore with a mutex-guarded map. It keeps at
// most maxTurns per conversation and never expires entries.
type Store struct {
	mu       sync.Mutex
	maxTurns int
	turns    map[string][]domain.ConversationTurn
}

// New constructs a Store.
func New(maxTurns int) *Store {
	return &Store{maxTurns: maxTurns, turns: make(map[string][]domain.ConversationTurn)}
}

// Recent implements domain.HistoryStore.
func (s *Store) Recent(_ domain.Context, conversationID string, n int) ([]domain.ConversationTurn, error) {
	if n <= 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.turns[conversationID]
	if len(all) > n {
		all = all[len(all)-n:]
	}
	out := make([]domain.ConversationTurn, len(all))
	copy(out, all)
	return out, nil
}

// Append implements domain.HistoryStore.
func (s *Store) Append(_ domain.Context, conversationID string, turns ...domain.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := append(s.turns[conversationID], turns...)
	if len(all) > s.maxTurns {
		all = all[len(all)-s.maxTurns:]
	}
	s.turns[conversationID] = all
	return nil
}

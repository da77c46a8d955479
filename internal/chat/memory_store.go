package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStateStore keeps conversation state in process memory, for tests and
// database-less development runs. States are stored as JSON so callers get
// copy semantics identical to the Redis store.
type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemoryStateStore creates an empty in-memory store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string][]byte)}
}

func (s *MemoryStateStore) Get(ctx context.Context, conversationID string) (*State, error) {
	s.mu.RLock()
	data, ok := s.states[conversationID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("chat: failed to decode state: %w", err)
	}
	return &state, nil
}

func (s *MemoryStateStore) Upsert(ctx context.Context, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("chat: failed to marshal state: %w", err)
	}

	s.mu.Lock()
	s.states[state.ConversationID] = data
	s.mu.Unlock()
	return nil
}

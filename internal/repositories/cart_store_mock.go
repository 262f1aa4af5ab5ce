package repositories

import (
	"context"
	"sync"
)

// MockCartStore is an in-memory implementation of CartStore.
type MockCartStore struct {
	snapshots map[string][]byte
	mu        sync.RWMutex
}

// NewMockCartStore creates a new instance of MockCartStore.
func NewMockCartStore() *MockCartStore {
	return &MockCartStore{
		snapshots: make(map[string][]byte),
	}
}

// Get returns the stored snapshot for a session, or ErrCartNotFound.
func (s *MockCartStore) Get(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.snapshots[sessionID]
	if !ok {
		return nil, &ErrCartNotFound{SessionID: sessionID}
	}
	return data, nil
}

// Set stores a snapshot for a session.
func (s *MockCartStore) Set(_ context.Context, sessionID string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[sessionID] = snapshot
	return nil
}

// Delete removes the stored snapshot for a session.
func (s *MockCartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, sessionID)
	return nil
}

package repository

import (
	"context"
	"sync"

	"github.com/yourorg/shipkeeper/internal/domain"
)

// MemorySnapshotStore holds the state document in process memory. Used for
// tests and for running the server without external storage.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySnapshotStore creates an empty in-memory snapshot store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Load returns the stored document, or domain.ErrNoSnapshot
func (s *MemorySnapshotStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrNoSnapshot
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Save overwrites the stored document
func (s *MemorySnapshotStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Ping always succeeds
func (s *MemorySnapshotStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *MemorySnapshotStore) Close() error {
	return nil
}

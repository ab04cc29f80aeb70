package memory

import (
	"context"
	"sync"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PositionSnapshot // keyed by date_key
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]*domain.PositionSnapshot),
	}
}

// Insert archives a resolved snapshot. Returns ErrDuplicateKey if the
// date_key already exists.
func (s *SnapshotStore) Insert(_ context.Context, snap *domain.PositionSnapshot) error {
	if snap == nil {
		return storage.ErrInvalidInput
	}
	if err := snap.Validate(); err != nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.DateKey]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[snap.DateKey] = snap.Clone()
	return nil
}

// GetByDateKey retrieves the snapshot for a calendar day. Returns
// ErrNotFound if not exists.
func (s *SnapshotStore) GetByDateKey(_ context.Context, dateKey string) (*domain.PositionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[dateKey]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return snap.Clone(), nil
}

// Latest retrieves the snapshot with the greatest date_key. Returns
// ErrNotFound on an empty archive.
func (s *SnapshotStore) Latest(_ context.Context) (*domain.PositionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.PositionSnapshot
	for _, snap := range s.data {
		if latest == nil || snap.DateKey > latest.DateKey {
			latest = snap
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return latest.Clone(), nil
}

// Verify interface compliance at compile time.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

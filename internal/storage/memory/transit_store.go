package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

type transitKey struct {
	body  domain.Body
	sign  domain.ZodiacSign
	start int64
}

// TransitStore is an in-memory implementation of storage.TransitStore.
type TransitStore struct {
	mu   sync.RWMutex
	data map[transitKey]domain.TransitRange
}

// NewTransitStore creates a new in-memory transit store.
func NewTransitStore() *TransitStore {
	return &TransitStore{
		data: make(map[transitKey]domain.TransitRange),
	}
}

// InsertBulk adds multiple transit ranges. Fails the entire batch on any
// duplicate (body, sign, start_date); nothing is written on failure.
func (s *TransitStore) InsertBulk(_ context.Context, ranges []domain.TransitRange) error {
	for _, r := range ranges {
		if !r.Body.IsValid() || !r.Sign.IsValid() || !r.End.After(r.Start) {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]transitKey, len(ranges))
	batch := make(map[transitKey]bool, len(ranges))
	for i, r := range ranges {
		key := transitKey{body: r.Body, sign: r.Sign, start: r.Start.UTC().Unix()}
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if batch[key] {
			return storage.ErrDuplicateKey
		}
		batch[key] = true
		keys[i] = key
	}
	for i, r := range ranges {
		s.data[keys[i]] = r
	}
	return nil
}

// GetByBody retrieves all ranges for a body, ordered by start_date ASC.
func (s *TransitStore) GetByBody(_ context.Context, body domain.Body) ([]domain.TransitRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.TransitRange
	for _, r := range s.data {
		if r.Body == body {
			result = append(result, r)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	return result, nil
}

// GetActive retrieves the ranges containing the given instant.
func (s *TransitStore) GetActive(_ context.Context, at time.Time) ([]domain.TransitRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.TransitRange
	for _, r := range s.data {
		if r.Contains(at) {
			result = append(result, r)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Body != result[j].Body {
			return result[i].Body < result[j].Body
		}
		return result[i].Start.Before(result[j].Start)
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TransitStore = (*TransitStore)(nil)

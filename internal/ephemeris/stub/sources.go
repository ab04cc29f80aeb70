package stub

import (
	"context"
	"sync"
	"time"

	"alchm-engine/internal/domain"
)

// StubPositionSource returns fixed in-memory positions for testing.
// Implements ephemeris.PositionSource interface.
type StubPositionSource struct {
	mu        sync.Mutex
	name      string
	positions map[domain.Body]domain.PlanetaryPosition
	err       error
	delay     time.Duration
	calls     int
}

// NewStubPositionSource creates a stub source that serves the given
// positions for every date.
func NewStubPositionSource(name string, positions map[domain.Body]domain.PlanetaryPosition) *StubPositionSource {
	return &StubPositionSource{name: name, positions: positions}
}

// NewFailingPositionSource creates a stub source whose Fetch always
// returns err.
func NewFailingPositionSource(name string, err error) *StubPositionSource {
	return &StubPositionSource{name: name, err: err}
}

// SetDelay makes Fetch sleep before responding, for timeout tests.
func (s *StubPositionSource) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Calls returns how many times Fetch was invoked.
func (s *StubPositionSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *StubPositionSource) Name() string {
	return s.name
}

// Fetch returns copies of the configured positions, or the configured
// error. A configured delay is interruptible by the context.
func (s *StubPositionSource) Fetch(ctx context.Context, _ time.Time) (map[domain.Body]domain.PlanetaryPosition, error) {
	s.mu.Lock()
	s.calls++
	delay := s.delay
	err := s.err
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	result := make(map[domain.Body]domain.PlanetaryPosition, len(s.positions))
	for body, pos := range s.positions {
		result[body] = pos
	}
	return result, nil
}

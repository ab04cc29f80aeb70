package domain

import (
	"fmt"
	"math"
	"time"
)

// ResolutionTier identifies which source supplied a position snapshot.
type ResolutionTier string

const (
	TierPrimary   ResolutionTier = "primary"
	TierSecondary ResolutionTier = "secondary"
	TierTertiary  ResolutionTier = "tertiary"
	TierFallback  ResolutionTier = "fallback"
)

// String returns the string representation of ResolutionTier.
func (t ResolutionTier) String() string {
	return string(t)
}

// NodeOppositionToleranceDeg is the allowed deviation from exact 180-degree
// opposition between the mean lunar nodes.
const NodeOppositionToleranceDeg = 5.0

// PlanetaryPosition represents one body's resolved ecliptic position.
// Corresponds to planetary_positions table in PostgreSQL.
type PlanetaryPosition struct {
	Body       Body
	Sign       ZodiacSign
	Degree     float64 // degree within sign, [0, 30)
	Longitude  float64 // absolute ecliptic longitude, [0, 360)
	Retrograde bool    // always false for Sun and Moon
}

// Validate checks positional invariants.
func (p *PlanetaryPosition) Validate() error {
	if !p.Body.IsValid() {
		return fmt.Errorf("%w: body %q", ErrInvalidPosition, p.Body)
	}
	if !p.Sign.IsValid() {
		return fmt.Errorf("%w: sign %q for %s", ErrInvalidPosition, p.Sign, p.Body)
	}
	if math.IsNaN(p.Degree) || p.Degree < 0 || p.Degree >= 30 {
		return fmt.Errorf("%w: degree %v for %s", ErrInvalidPosition, p.Degree, p.Body)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < 0 || p.Longitude >= 360 {
		return fmt.Errorf("%w: longitude %v for %s", ErrInvalidPosition, p.Longitude, p.Body)
	}
	if p.Body.IsLuminary() && p.Retrograde {
		return fmt.Errorf("%w: %s marked retrograde", ErrInvalidPosition, p.Body)
	}
	return nil
}

// PositionSnapshot is an immutable set of resolved positions for one
// calendar day. Snapshots are created on resolver miss and replaced whole;
// they are never mutated after construction.
type PositionSnapshot struct {
	DateKey    string // YYYY-MM-DD
	Positions  map[Body]PlanetaryPosition
	Tier       ResolutionTier
	ResolvedAt time.Time
}

// Position returns the position of the given body and whether it is present.
func (s *PositionSnapshot) Position(b Body) (PlanetaryPosition, bool) {
	p, ok := s.Positions[b]
	return p, ok
}

// Clone returns a deep copy so cached snapshots cannot be mutated by callers.
func (s *PositionSnapshot) Clone() *PositionSnapshot {
	positions := make(map[Body]PlanetaryPosition, len(s.Positions))
	for b, p := range s.Positions {
		positions[b] = p
	}
	return &PositionSnapshot{
		DateKey:    s.DateKey,
		Positions:  positions,
		Tier:       s.Tier,
		ResolvedAt: s.ResolvedAt,
	}
}

// Validate checks snapshot invariants: every planet present and valid,
// and the lunar nodes (when both present) in opposition within tolerance.
func (s *PositionSnapshot) Validate() error {
	if s.DateKey == "" {
		return fmt.Errorf("%w: empty date key", ErrInvalidSnapshot)
	}
	for _, b := range Planets {
		p, ok := s.Positions[b]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidSnapshot, b)
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	north, hasNorth := s.Positions[BodyNorthNode]
	south, hasSouth := s.Positions[BodySouthNode]
	if hasNorth && hasSouth {
		sep := math.Abs(math.Mod(north.Longitude-south.Longitude+540, 360) - 180)
		dev := math.Abs(180 - sep)
		if dev > NodeOppositionToleranceDeg {
			return fmt.Errorf("%w: node opposition off by %.2f°", ErrInvalidSnapshot, dev)
		}
	}
	return nil
}

// DateKeyFor formats a time as the cache day key (UTC calendar day).
func DateKeyFor(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

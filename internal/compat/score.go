// Package compat scores elemental compatibility between two profiles under
// the self-reinforcement invariant: same-element pairings score highest and
// no pairing ever scores below the floor.
package compat

import (
	"errors"
	"fmt"

	"alchm-engine/internal/domain"
)

// Score bounds. Every score the package can emit lies in
// [ScoreFloor, ScoreCeiling]; the only construction paths are the
// same-element constant and the validated cross-element matrix.
const (
	ScoreFloor   = 0.7
	ScoreCeiling = 0.95

	// sameElementScore is returned when both profiles share a dominant axis.
	sameElementScore = 0.9

	// Cross-element matrix entries. Complementary pairs score high, all
	// remaining pairs the floor.
	crossHigh = 0.8
	crossBase = 0.7
)

// ErrScoreOutOfRange indicates a score outside [ScoreFloor, ScoreCeiling].
// Emitting one is a programming defect, not an input condition.
var ErrScoreOutOfRange = errors.New("compatibility score out of range")

// Score is a validated compatibility score in [ScoreFloor, ScoreCeiling].
type Score float64

// Float64 returns the score as a plain float.
func (s Score) Float64() float64 {
	return float64(s)
}

// New validates a raw value into a Score.
func New(v float64) (Score, error) {
	if v < ScoreFloor || v > ScoreCeiling {
		return 0, fmt.Errorf("%w: %v", ErrScoreOutOfRange, v)
	}
	return Score(v), nil
}

// mustScore converts a matrix entry into a Score, panicking on violation.
// The matrix is fixed at compile time, so a panic here means the table
// itself was edited out of range.
func mustScore(v float64) Score {
	s, err := New(v)
	if err != nil {
		panic(err)
	}
	return s
}

// crossScores is the symmetric cross-element matrix. Fire–Air and
// Water–Earth reinforce each other; every other pairing takes the floor.
// The diagonal is unused: matching dominants short-circuit to
// sameElementScore.
var crossScores = map[domain.Element]map[domain.Element]float64{
	domain.ElementFire: {
		domain.ElementWater: crossBase,
		domain.ElementEarth: crossBase,
		domain.ElementAir:   crossHigh,
	},
	domain.ElementWater: {
		domain.ElementFire:  crossBase,
		domain.ElementEarth: crossHigh,
		domain.ElementAir:   crossBase,
	},
	domain.ElementEarth: {
		domain.ElementFire:  crossBase,
		domain.ElementWater: crossHigh,
		domain.ElementAir:   crossBase,
	},
	domain.ElementAir: {
		domain.ElementFire:  crossHigh,
		domain.ElementWater: crossBase,
		domain.ElementEarth: crossBase,
	},
}

// ScoreProfiles compares two raw elemental profiles. Matching dominant
// axes return 0.9; otherwise the cross-element matrix applies. The result
// is always within [ScoreFloor, ScoreCeiling] by construction.
func ScoreProfiles(a, b domain.ElementalProperties) Score {
	da := a.Dominant()
	db := b.Dominant()
	if da == db {
		return mustScore(sameElementScore)
	}
	return mustScore(crossScores[da][db])
}

// ValidateMatrix checks the symmetry and range of the cross-element matrix.
// Production code never needs this; tests run it to catch table edits.
func ValidateMatrix() error {
	for _, a := range domain.Elements {
		for _, b := range domain.Elements {
			if a == b {
				continue
			}
			ab, ok := crossScores[a][b]
			if !ok {
				return fmt.Errorf("missing matrix entry %s-%s", a, b)
			}
			ba := crossScores[b][a]
			if ab != ba {
				return fmt.Errorf("asymmetric matrix entry %s-%s: %v != %v", a, b, ab, ba)
			}
			if _, err := New(ab); err != nil {
				return fmt.Errorf("matrix entry %s-%s: %w", a, b, err)
			}
			if ab >= sameElementScore {
				return fmt.Errorf("matrix entry %s-%s: %v breaks self-reinforcement", a, b, ab)
			}
		}
	}
	return nil
}

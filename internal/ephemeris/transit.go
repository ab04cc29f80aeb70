package ephemeris

import (
	"math"
	"time"

	"alchm-engine/internal/domain"
)

// TransitTable answers which sign a body is documented to occupy on a
// date. Bodies or dates without a covering range are simply not validated.
type TransitTable struct {
	ranges map[domain.Body][]domain.TransitRange
}

// NewTransitTable builds a lookup table from transit ranges.
func NewTransitTable(ranges []domain.TransitRange) *TransitTable {
	t := &TransitTable{ranges: make(map[domain.Body][]domain.TransitRange)}
	for _, r := range ranges {
		t.ranges[r.Body] = append(t.ranges[r.Body], r)
	}
	return t
}

// ExpectedSign returns the documented sign for a body on a date, if the
// table has a covering range.
func (t *TransitTable) ExpectedSign(body domain.Body, date time.Time) (domain.ZodiacSign, bool) {
	for _, r := range t.ranges[body] {
		if r.Contains(date) {
			return r.Sign, true
		}
	}
	return "", false
}

// ValidateSnapshot checks every position against the table and corrects
// mismatches in place: the sign is overwritten, the degree within sign is
// preserved, and the longitude is recomputed from the corrected sign.
// A mismatch is a correction, not an error. Returns the number of
// corrected positions.
func (t *TransitTable) ValidateSnapshot(snapshot *domain.PositionSnapshot, date time.Time) int {
	if snapshot == nil {
		return 0
	}
	corrections := 0
	for body, pos := range snapshot.Positions {
		expected, ok := t.ExpectedSign(body, date)
		if !ok || expected == pos.Sign {
			continue
		}
		pos.Sign = expected
		pos.Longitude = float64(expected.Index())*30 + math.Mod(pos.Degree, 30)
		snapshot.Positions[body] = pos
		corrections++
	}
	return corrections
}

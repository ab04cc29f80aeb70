package domain

import "time"

// TransitRange records a documented historical interval during which a body
// occupies a sign. Ranges are read-only reference data refreshed
// out-of-band. Corresponds to planetary_transits table in PostgreSQL.
type TransitRange struct {
	Body  Body
	Sign  ZodiacSign
	Start time.Time // inclusive, UTC midnight
	End   time.Time // exclusive, UTC midnight
}

// Contains reports whether the instant falls inside [Start, End).
func (r TransitRange) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End)
}

package ephemeris

import (
	"context"
	"math"
	"time"

	"alchm-engine/internal/domain"
)

// AnalyticSource computes positions locally from mean orbital motion. It
// is the tertiary resolution tier: moderate precision (degrees, not
// arcminutes), but it needs no network and never fails. Retrograde motion
// is not modeled; only the mean lunar nodes, which regress permanently,
// are flagged retrograde.
type AnalyticSource struct{}

// NewAnalyticSource creates the local analytic ephemeris source.
func NewAnalyticSource() *AnalyticSource {
	return &AnalyticSource{}
}

// j2000 is the standard epoch: 2000-01-01 12:00 UTC.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// meanElements holds mean ecliptic longitude at J2000 and mean daily
// motion in degrees per day, from standard planetary mean element tables.
type meanElements struct {
	epochLongitude float64
	dailyMotion    float64
}

var meanMotion = map[domain.Body]meanElements{
	domain.BodySun:       {280.460, 0.9856474},
	domain.BodyMoon:      {218.316, 13.176396},
	domain.BodyMercury:   {252.251, 4.092335},
	domain.BodyVenus:     {181.980, 1.602130},
	domain.BodyMars:      {355.433, 0.524033},
	domain.BodyJupiter:   {34.351, 0.083091},
	domain.BodySaturn:    {50.077, 0.033459},
	domain.BodyUranus:    {314.055, 0.011731},
	domain.BodyNeptune:   {304.348, 0.005982},
	domain.BodyPluto:     {238.929, 0.003968},
	domain.BodyNorthNode: {125.045, -0.0529539},
}

// Name identifies the source in logs and metrics.
func (s *AnalyticSource) Name() string {
	return "analytic"
}

// Fetch computes mean positions for the date. It cannot fail; the error
// return satisfies the PositionSource contract.
func (s *AnalyticSource) Fetch(_ context.Context, date time.Time) (map[domain.Body]domain.PlanetaryPosition, error) {
	days := date.UTC().Sub(j2000).Seconds() / secondsPerDayFloat

	positions := make(map[domain.Body]domain.PlanetaryPosition, len(meanMotion)+1)
	for body, elems := range meanMotion {
		lon := normalizeDegrees(elems.epochLongitude + elems.dailyMotion*days)
		positions[body] = positionAtLongitude(body, lon, body.IsNode())
	}

	// The south node mirrors the north node exactly.
	north := positions[domain.BodyNorthNode]
	positions[domain.BodySouthNode] = positionAtLongitude(
		domain.BodySouthNode, normalizeDegrees(north.Longitude+180), true)

	return positions, nil
}

const secondsPerDayFloat = 86400.0

// positionAtLongitude builds a canonical position from an absolute
// ecliptic longitude.
func positionAtLongitude(body domain.Body, lon float64, retrograde bool) domain.PlanetaryPosition {
	return domain.PlanetaryPosition{
		Body:       body,
		Sign:       domain.SignAtLongitude(lon),
		Degree:     math.Mod(lon, 30),
		Longitude:  lon,
		Retrograde: retrograde && !body.IsLuminary(),
	}
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Verify interface compliance at compile time.
var _ PositionSource = (*AnalyticSource)(nil)

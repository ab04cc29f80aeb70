package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"alchm-engine/internal/domain"
)

// PositionSource provides raw planetary positions from an external source
// tier. Implementations decode and validate their own wire payloads; the
// resolver only ever sees canonical positions.
type PositionSource interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Fetch returns positions for a UTC date. An error means the tier is
	// unavailable or returned an invalid payload; the resolver advances to
	// the next tier.
	Fetch(ctx context.Context, date time.Time) (map[domain.Body]domain.PlanetaryPosition, error)
}

// positionPayload is the wire shape shared by the external position APIs.
// Field names follow the upstream JSON convention.
type positionPayload struct {
	Sign           string   `json:"sign"`
	Degree         *float64 `json:"degree"`
	ExactLongitude *float64 `json:"exactLongitude"`
	IsRetrograde   bool     `json:"isRetrograde"`
}

// snapshotPayload is the wire envelope: body name to position payload.
type snapshotPayload struct {
	Positions map[string]positionPayload `json:"positions"`
}

// payloadBodyNames maps upstream body keys (lowercase or camelCase) to
// canonical bodies.
var payloadBodyNames = map[string]domain.Body{
	"sun": domain.BodySun, "moon": domain.BodyMoon,
	"mercury": domain.BodyMercury, "venus": domain.BodyVenus, "mars": domain.BodyMars,
	"jupiter": domain.BodyJupiter, "saturn": domain.BodySaturn,
	"uranus": domain.BodyUranus, "neptune": domain.BodyNeptune, "pluto": domain.BodyPluto,
	"northnode": domain.BodyNorthNode, "north node": domain.BodyNorthNode,
	"southnode": domain.BodySouthNode, "south node": domain.BodySouthNode,
}

// payloadSignNames maps upstream lowercase sign keys to canonical signs.
var payloadSignNames = map[string]domain.ZodiacSign{
	"aries": domain.Aries, "taurus": domain.Taurus, "gemini": domain.Gemini,
	"cancer": domain.Cancer, "leo": domain.Leo, "virgo": domain.Virgo,
	"libra": domain.Libra, "scorpio": domain.Scorpio, "sagittarius": domain.Sagittarius,
	"capricorn": domain.Capricorn, "aquarius": domain.Aquarius, "pisces": domain.Pisces,
}

// decodeSnapshotPayload converts raw JSON into canonical positions. This is
// the strict parsing boundary per source tier: missing fields, NaN values,
// out-of-range degrees or longitudes, unknown signs and snapshots missing
// any required planet are all rejected here rather than flowing inward.
func decodeSnapshotPayload(raw []byte) (map[domain.Body]domain.PlanetaryPosition, error) {
	var payload snapshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode positions payload: %w", err)
	}
	if len(payload.Positions) == 0 {
		return nil, fmt.Errorf("positions payload is empty")
	}

	positions := make(map[domain.Body]domain.PlanetaryPosition, len(payload.Positions))
	for name, p := range payload.Positions {
		body, ok := payloadBodyNames[strings.ToLower(name)]
		if !ok {
			// Unknown extra bodies (asteroids, angles) are ignored.
			continue
		}
		pos, err := canonicalPosition(body, p)
		if err != nil {
			return nil, err
		}
		positions[body] = pos
	}

	for _, b := range domain.Planets {
		if _, ok := positions[b]; !ok {
			return nil, fmt.Errorf("positions payload missing %s", b)
		}
	}
	return positions, nil
}

func canonicalPosition(body domain.Body, p positionPayload) (domain.PlanetaryPosition, error) {
	if p.Degree == nil || p.ExactLongitude == nil {
		return domain.PlanetaryPosition{}, fmt.Errorf("position for %s missing degree or longitude", body)
	}
	sign, ok := payloadSignNames[strings.ToLower(p.Sign)]
	if !ok {
		return domain.PlanetaryPosition{}, fmt.Errorf("position for %s has unknown sign %q", body, p.Sign)
	}
	degree := *p.Degree
	longitude := *p.ExactLongitude
	if math.IsNaN(degree) || math.IsNaN(longitude) {
		return domain.PlanetaryPosition{}, fmt.Errorf("position for %s contains NaN", body)
	}

	pos := domain.PlanetaryPosition{
		Body:       body,
		Sign:       sign,
		Degree:     degree,
		Longitude:  longitude,
		Retrograde: p.IsRetrograde && !body.IsLuminary(),
	}
	if err := pos.Validate(); err != nil {
		return domain.PlanetaryPosition{}, err
	}
	return pos, nil
}

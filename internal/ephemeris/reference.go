package ephemeris

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"alchm-engine/internal/domain"
)

// Bundled, versioned reference data shipped with the engine: one dated
// known-good positions table used as the last-resort resolution tier, and
// the per-body transit-date-range table used for validation. Both are
// refreshed out-of-band by regenerating the JSON files.

//go:embed reference/positions.json reference/transits.json
var referenceFS embed.FS

// referenceSnapshotFile wraps the positions envelope with its version date.
type referenceSnapshotFile struct {
	Version string `json:"version"`
}

// LoadReferenceSnapshot parses the bundled static positions table. The
// returned snapshot carries the reference date as its DateKey; the
// resolver rekeys it to the requested day when used as fallback.
func LoadReferenceSnapshot() (*domain.PositionSnapshot, error) {
	raw, err := referenceFS.ReadFile("reference/positions.json")
	if err != nil {
		return nil, fmt.Errorf("read reference positions: %w", err)
	}

	var meta referenceSnapshotFile
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode reference version: %w", err)
	}

	positions, err := decodeSnapshotPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("decode reference positions: %w", err)
	}

	snapshot := &domain.PositionSnapshot{
		DateKey:   meta.Version,
		Positions: positions,
		Tier:      domain.TierFallback,
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("reference snapshot: %w", err)
	}
	return snapshot, nil
}

// transitFile mirrors reference/transits.json.
type transitFile struct {
	Version string `json:"version"`
	Ranges  []struct {
		Body  string `json:"body"`
		Sign  string `json:"sign"`
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"ranges"`
}

// LoadReferenceTransits parses the bundled transit-date-range table.
func LoadReferenceTransits() ([]domain.TransitRange, error) {
	raw, err := referenceFS.ReadFile("reference/transits.json")
	if err != nil {
		return nil, fmt.Errorf("read reference transits: %w", err)
	}

	var file transitFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode reference transits: %w", err)
	}

	ranges := make([]domain.TransitRange, 0, len(file.Ranges))
	for _, r := range file.Ranges {
		body := domain.Body(r.Body)
		sign := domain.ZodiacSign(r.Sign)
		if !body.IsValid() || !sign.IsValid() {
			return nil, fmt.Errorf("transit range %s in %s: unknown body or sign", r.Body, r.Sign)
		}
		start, err := time.ParseInLocation("2006-01-02", r.Start, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("transit range for %s: %w", body, err)
		}
		end, err := time.ParseInLocation("2006-01-02", r.End, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("transit range for %s: %w", body, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("transit range for %s: end %s not after start %s", body, r.End, r.Start)
		}
		ranges = append(ranges, domain.TransitRange{Body: body, Sign: sign, Start: start, End: end})
	}
	return ranges, nil
}

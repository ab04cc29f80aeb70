package postgres

import (
	"context"
	"fmt"
	"time"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL. Each
// snapshot is stored as one row per body in planetary_positions, keyed by
// (date_key, body).
type SnapshotStore struct {
	pool *Pool
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Insert archives a resolved snapshot atomically. Returns ErrDuplicateKey
// if the date_key already exists.
func (s *SnapshotStore) Insert(ctx context.Context, snap *domain.PositionSnapshot) error {
	if snap == nil {
		return storage.ErrInvalidInput
	}
	if err := snap.Validate(); err != nil {
		return storage.ErrInvalidInput
	}
	dateKey, err := time.Parse("2006-01-02", snap.DateKey)
	if err != nil {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO planetary_positions (
			date_key, body, sign, degree, longitude, retrograde, tier, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, pos := range snap.Positions {
		if _, err := tx.Exec(ctx, query,
			dateKey,
			string(pos.Body),
			string(pos.Sign),
			pos.Degree,
			pos.Longitude,
			pos.Retrograde,
			string(snap.Tier),
			snap.ResolvedAt.UTC(),
		); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert position: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot insert: %w", err)
	}
	return nil
}

// GetByDateKey retrieves the snapshot for a calendar day. Returns
// ErrNotFound if not exists.
func (s *SnapshotStore) GetByDateKey(ctx context.Context, dateKey string) (*domain.PositionSnapshot, error) {
	day, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT body, sign, degree, longitude, retrograde, tier, resolved_at
		FROM planetary_positions
		WHERE date_key = $1
	`

	rows, err := s.pool.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("get snapshot by date: %w", err)
	}
	defer rows.Close()

	snap := &domain.PositionSnapshot{
		DateKey:   dateKey,
		Positions: make(map[domain.Body]domain.PlanetaryPosition),
	}
	for rows.Next() {
		var pos domain.PlanetaryPosition
		var body, sign, tier string
		var resolvedAt time.Time
		if err := rows.Scan(&body, &sign, &pos.Degree, &pos.Longitude, &pos.Retrograde, &tier, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		pos.Body = domain.Body(body)
		pos.Sign = domain.ZodiacSign(sign)
		snap.Positions[pos.Body] = pos
		snap.Tier = domain.ResolutionTier(tier)
		snap.ResolvedAt = resolvedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate positions: %w", err)
	}
	if len(snap.Positions) == 0 {
		return nil, storage.ErrNotFound
	}
	return snap, nil
}

// Latest retrieves the snapshot with the greatest date_key. Returns
// ErrNotFound on an empty archive.
func (s *SnapshotStore) Latest(ctx context.Context) (*domain.PositionSnapshot, error) {
	query := `SELECT max(date_key) FROM planetary_positions`

	var latest *time.Time
	if err := s.pool.QueryRow(ctx, query).Scan(&latest); err != nil {
		return nil, fmt.Errorf("get latest snapshot date: %w", err)
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return s.GetByDateKey(ctx, latest.Format("2006-01-02"))
}

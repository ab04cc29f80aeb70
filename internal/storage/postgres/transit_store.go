package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// TransitStore implements storage.TransitStore using PostgreSQL.
type TransitStore struct {
	pool *Pool
}

// NewTransitStore creates a new TransitStore.
func NewTransitStore(pool *Pool) *TransitStore {
	return &TransitStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransitStore = (*TransitStore)(nil)

// InsertBulk adds multiple transit ranges atomically. Fails the entire
// batch on any duplicate (body, sign, start_date).
func (s *TransitStore) InsertBulk(ctx context.Context, ranges []domain.TransitRange) error {
	if len(ranges) == 0 {
		return nil
	}
	for _, r := range ranges {
		if !r.Body.IsValid() || !r.Sign.IsValid() || !r.End.After(r.Start) {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transit insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transit_ranges (body, sign, start_date, end_date)
		VALUES ($1, $2, $3, $4)
	`
	for _, r := range ranges {
		if _, err := tx.Exec(ctx, query,
			string(r.Body),
			string(r.Sign),
			r.Start.UTC(),
			r.End.UTC(),
		); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert transit range: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transit insert: %w", err)
	}
	return nil
}

// GetByBody retrieves all ranges for a body, ordered by start_date ASC.
func (s *TransitStore) GetByBody(ctx context.Context, body domain.Body) ([]domain.TransitRange, error) {
	query := `
		SELECT body, sign, start_date, end_date
		FROM transit_ranges
		WHERE body = $1
		ORDER BY start_date ASC
	`

	rows, err := s.pool.Query(ctx, query, string(body))
	if err != nil {
		return nil, fmt.Errorf("get transits by body: %w", err)
	}
	defer rows.Close()

	return scanTransitRanges(rows)
}

// GetActive retrieves the ranges containing the given instant, ordered by
// body then start_date.
func (s *TransitStore) GetActive(ctx context.Context, at time.Time) ([]domain.TransitRange, error) {
	query := `
		SELECT body, sign, start_date, end_date
		FROM transit_ranges
		WHERE start_date <= $1 AND end_date > $1
		ORDER BY body ASC, start_date ASC
	`

	rows, err := s.pool.Query(ctx, query, at.UTC())
	if err != nil {
		return nil, fmt.Errorf("get active transits: %w", err)
	}
	defer rows.Close()

	return scanTransitRanges(rows)
}

func scanTransitRanges(rows pgx.Rows) ([]domain.TransitRange, error) {
	var result []domain.TransitRange
	for rows.Next() {
		var r domain.TransitRange
		var body, sign string
		if err := rows.Scan(&body, &sign, &r.Start, &r.End); err != nil {
			return nil, fmt.Errorf("scan transit range: %w", err)
		}
		r.Body = domain.Body(body)
		r.Sign = domain.ZodiacSign(sign)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transit ranges: %w", err)
	}
	return result, nil
}
